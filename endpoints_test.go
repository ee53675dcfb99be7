package welstory

import "testing"

func TestEndpointSearchRestaurant(t *testing.T) {
	if got := EndpointSearchRestaurant("tower cafe"); got != "/api/mypage/rest-list?restaurantName=tower+cafe" {
		t.Errorf("EndpointSearchRestaurant = %q", got)
	}
	// Malformed input is encoded, not rejected; the server decides.
	if got := EndpointSearchRestaurant("a&b=c"); got != "/api/mypage/rest-list?restaurantName=a%26b%3Dc" {
		t.Errorf("EndpointSearchRestaurant = %q", got)
	}
}

func TestEndpointMeals(t *testing.T) {
	got := EndpointMeals(20240102, "2", "R1")
	want := "/api/meal?menuDt=20240102&menuMealType=2&restaurantCode=R1"
	if got != want {
		t.Errorf("EndpointMeals = %q, want %q", got, want)
	}
}

func TestEndpointMealNutrients(t *testing.T) {
	got := EndpointMealNutrients(20240102, "2", "R1", "H 1")
	want := "/api/meal/detail/nutrient?menuDt=20240102&menuMealType=2&restaurantCode=R1&hallNo=H+1"
	if got != want {
		t.Errorf("EndpointMealNutrients = %q, want %q", got, want)
	}
}

func TestEndpointMealDetail(t *testing.T) {
	got := EndpointMealDetail(20240102, "2", "R1", "H1")
	want := "/api/meal/detail?menuDt=20240102&menuMealType=2&restaurantCode=R1&hallNo=H1"
	if got != want {
		t.Errorf("EndpointMealDetail = %q, want %q", got, want)
	}
}
