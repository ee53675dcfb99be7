package welstory

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// Meal is one immutable meal entry listed for a restaurant, date and meal
// time. SetName and SubMenuText are empty when the service omits them.
type Meal struct {
	HallNo      string
	Date        int
	MealTimeID  string
	Name        string
	CourseName  string
	CourseType  string
	SetName     string
	SubMenuText string
	PhotoURL    string

	restaurant *Restaurant
}

// MealMenu is the per-menu-item nutritional breakdown. The service returns
// every numeric field as a decimal string; they are parsed here.
type MealMenu struct {
	Name         string
	IsMain       bool
	Calorie      float64
	Carbohydrate float64
	Sugar        float64
	Fiber        float64
	Fat          float64
	Protein      float64
}

func decodeMeal(r *Restaurant, date int, mealTimeID string, element interface{}) (*Meal, error) {
	object, err := objectElement("list-meals", element)
	if err != nil {
		return nil, err
	}

	required := map[string]string{}
	for _, key := range []string{"hallNo", "menuName", "courseTxt", "menuCourseType", "photoUrl", "photoCd"} {
		value, ok := stringField(object, key)
		if !ok {
			return nil, shapeError("list-meals", key+" missing or not a string", element)
		}
		required[key] = value
	}

	return &Meal{
		HallNo:      required["hallNo"],
		Date:        date,
		MealTimeID:  mealTimeID,
		Name:        required["menuName"],
		CourseName:  required["courseTxt"],
		CourseType:  required["menuCourseType"],
		SetName:     optionalStringField(object, "setMenuName"),
		SubMenuText: optionalStringField(object, "subMenuTxt"),
		PhotoURL:    required["photoUrl"] + required["photoCd"],
		restaurant:  r,
	}, nil
}

// Restaurant returns the restaurant this meal belongs to.
func (m *Meal) Restaurant() *Restaurant { return m.restaurant }

// ListMenus returns the meal's menu items with parsed nutrient values. A
// successful response without a data field degrades to an empty list; a
// failed request does not.
func (m *Meal) ListMenus(ctx context.Context) ([]MealMenu, error) {
	endpoint := EndpointMealNutrients(m.Date, m.MealTimeID, m.restaurant.ID, m.HallNo)
	resp, err := m.restaurant.client.Request(ctx, endpoint, RequestOptions{
		Method:  http.MethodGet,
		Headers: map[string]string{"Cookie": m.restaurant.activeCookie()},
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, httpError("list-meal-menus", resp)
	}

	var payload map[string]interface{}
	if err := resp.JSON(&payload); err != nil {
		return nil, opError(err, "list-meal-menus")
	}
	data, ok := payload["data"].([]interface{})
	if !ok {
		return []MealMenu{}, nil
	}

	menus := make([]MealMenu, 0, len(data))
	for _, element := range data {
		menu, err := decodeMealMenu(element)
		if err != nil {
			return nil, err
		}
		menus = append(menus, menu)
	}
	return menus, nil
}

// Detail returns the raw meal-detail payload. Like the menu listing it
// degrades to an empty result when the data field is absent.
func (m *Meal) Detail(ctx context.Context) (map[string]interface{}, error) {
	endpoint := EndpointMealDetail(m.Date, m.MealTimeID, m.restaurant.ID, m.HallNo)
	resp, err := m.restaurant.client.Request(ctx, endpoint, RequestOptions{
		Method:  http.MethodGet,
		Headers: map[string]string{"Cookie": m.restaurant.activeCookie()},
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, httpError("meal-detail", resp)
	}

	var payload map[string]interface{}
	if err := resp.JSON(&payload); err != nil {
		return nil, opError(err, "meal-detail")
	}
	detail, _ := payload["data"].(map[string]interface{})
	return detail, nil
}

func decodeMealMenu(element interface{}) (MealMenu, error) {
	object, err := objectElement("list-meal-menus", element)
	if err != nil {
		return MealMenu{}, err
	}

	name, ok := stringField(object, "menuName")
	if !ok {
		return MealMenu{}, shapeError("list-meal-menus", "menuName missing or not a string", element)
	}

	// kcal arrives with thousands separators ("1,234"); the rest are plain
	// decimal strings.
	calorie, err := numericField(object, "kcal", element)
	if err != nil {
		return MealMenu{}, err
	}
	carbohydrate, err := numericField(object, "totCho", element)
	if err != nil {
		return MealMenu{}, err
	}
	sugar, err := numericField(object, "sugar", element)
	if err != nil {
		return MealMenu{}, err
	}
	fiber, err := numericField(object, "fib", element)
	if err != nil {
		return MealMenu{}, err
	}
	fat, err := numericField(object, "fat", element)
	if err != nil {
		return MealMenu{}, err
	}
	protein, err := numericField(object, "protein", element)
	if err != nil {
		return MealMenu{}, err
	}

	return MealMenu{
		Name:         name,
		IsMain:       optionalStringField(object, "typicalMenu") == "Y",
		Calorie:      calorie,
		Carbohydrate: carbohydrate,
		Sugar:        sugar,
		Fiber:        fiber,
		Fat:          fat,
		Protein:      protein,
	}, nil
}

func numericField(object map[string]interface{}, key string, element interface{}) (float64, error) {
	raw, ok := stringField(object, key)
	if !ok {
		return 0, shapeError("list-meal-menus", key+" missing or not a string", element)
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, shapeError("list-meal-menus", key+" is not a decimal string", element)
	}
	return value, nil
}
