package welstory

import (
	"fmt"
	"net/url"
)

// Endpoint paths of the upstream Welstory REST contract. Dynamic segments
// are percent-encoded and interpolated without further validation; malformed
// input simply yields a URL the server rejects.
const (
	EndpointLogin        = "/login"
	EndpointSession      = "/session"
	EndpointMyRestaurant = "/api/mypage/rest-my-list"
	EndpointRegister     = "/api/mypage/rest-regi"
	EndpointUnregister   = "/api/mypage/rest-delete"
	EndpointMealTimes    = "/api/menu/getMealTimeList"
)

// EndpointSearchRestaurant returns the restaurant search path for query.
func EndpointSearchRestaurant(query string) string {
	return "/api/mypage/rest-list?restaurantName=" + url.QueryEscape(query)
}

// EndpointMeals returns the meal listing path for a YYYYMMDD date, a meal
// time code and a restaurant code.
func EndpointMeals(date int, mealTimeID, restaurantID string) string {
	return fmt.Sprintf("/api/meal?menuDt=%d&menuMealType=%s&restaurantCode=%s",
		date, url.QueryEscape(mealTimeID), url.QueryEscape(restaurantID))
}

// EndpointMealDetail returns the meal detail path for one hall's meal.
func EndpointMealDetail(date int, mealTimeID, restaurantID, hallNo string) string {
	return fmt.Sprintf("/api/meal/detail?menuDt=%d&menuMealType=%s&restaurantCode=%s&hallNo=%s",
		date, url.QueryEscape(mealTimeID), url.QueryEscape(restaurantID), url.QueryEscape(hallNo))
}

// EndpointMealNutrients returns the per-menu-item nutrient path for one
// hall's meal.
func EndpointMealNutrients(date int, mealTimeID, restaurantID, hallNo string) string {
	return fmt.Sprintf("/api/meal/detail/nutrient?menuDt=%d&menuMealType=%s&restaurantCode=%s&hallNo=%s",
		date, url.QueryEscape(mealTimeID), url.QueryEscape(restaurantID), url.QueryEscape(hallNo))
}
