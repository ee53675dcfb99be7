package welstory

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
)

// Restaurant is an immutable handle to one cafeteria restaurant. The client
// reference only routes further calls; it carries no ownership.
type Restaurant struct {
	ID          string
	Name        string
	Description string

	client *Client
}

// MealTime is a named time-of-day slot (breakfast, lunch, ...) under which
// meals are grouped.
type MealTime struct {
	ID   string
	Name string
}

func decodeRestaurant(c *Client, element interface{}) (*Restaurant, error) {
	object, err := objectElement("search-restaurant", element)
	if err != nil {
		return nil, err
	}
	id, ok := stringField(object, "restaurantCode")
	if !ok {
		return nil, shapeError("search-restaurant", "restaurantCode missing or not a string", element)
	}
	name, ok := stringField(object, "restaurantName")
	if !ok {
		return nil, shapeError("search-restaurant", "restaurantName missing or not a string", element)
	}
	description, ok := stringField(object, "restaurantDesc")
	if !ok {
		return nil, shapeError("search-restaurant", "restaurantDesc missing or not a string", element)
	}
	return &Restaurant{ID: id, Name: name, Description: description, client: c}, nil
}

// activeCookie identifies this restaurant as the active one to endpoints
// that key off a cookie instead of a query parameter.
func (r *Restaurant) activeCookie() string {
	return "cafeteriaActiveId=" + r.ID
}

// CheckIsRegistered reports whether this restaurant appears in the account's
// registered-restaurant list.
func (r *Restaurant) CheckIsRegistered(ctx context.Context) (bool, error) {
	resp, err := r.client.Request(ctx, EndpointMyRestaurant, RequestOptions{Method: http.MethodGet})
	if err != nil {
		return false, err
	}
	if !resp.OK() {
		return false, httpError("check-registered", resp)
	}

	var payload map[string]interface{}
	if err := resp.JSON(&payload); err != nil {
		return false, opError(err, "check-registered")
	}
	data, _ := payload["data"].([]interface{})
	for _, element := range data {
		object, ok := element.(map[string]interface{})
		if !ok {
			continue
		}
		if id, _ := stringField(object, "restaurantId"); id == r.ID {
			return true, nil
		}
	}
	return false, nil
}

// Register adds this restaurant to the account's registered list. It fails
// with a StateConflict error when the restaurant is already registered,
// without issuing the registration request.
func (r *Restaurant) Register(ctx context.Context) error {
	registered, err := r.CheckIsRegistered(ctx)
	if err != nil {
		return err
	}
	if registered {
		return &ClientError{
			Type:    ErrorTypeState,
			Op:      "register",
			Message: "restaurant " + r.ID + " is already registered",
		}
	}

	// The server wants some order-sequence value but attaches no meaning
	// the client can observe; any integer satisfies it.
	body, err := json.Marshal([]map[string]interface{}{{
		"restaurantId": r.ID,
		"orderSeq":     rand.Intn(1000),
	}})
	if err != nil {
		return err
	}

	resp, err := r.client.Request(ctx, EndpointRegister, RequestOptions{
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    body,
	})
	if err != nil {
		return err
	}
	if !resp.OK() {
		return httpError("register", resp)
	}
	return nil
}

// Unregister removes this restaurant from the account's registered list. It
// fails with a StateConflict error when the restaurant is not currently
// registered.
func (r *Restaurant) Unregister(ctx context.Context) error {
	registered, err := r.CheckIsRegistered(ctx)
	if err != nil {
		return err
	}
	if !registered {
		return &ClientError{
			Type:    ErrorTypeState,
			Op:      "unregister",
			Message: "restaurant " + r.ID + " is not registered",
		}
	}

	body, err := json.Marshal([]map[string]interface{}{{
		"restaurantId": r.ID,
	}})
	if err != nil {
		return err
	}

	resp, err := r.client.Request(ctx, EndpointUnregister, RequestOptions{
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    body,
	})
	if err != nil {
		return err
	}
	if !resp.OK() {
		return httpError("unregister", resp)
	}
	return nil
}

// ListMealTimes returns the restaurant's meal-time slots. A successful
// response without a data field degrades to an empty list.
func (r *Restaurant) ListMealTimes(ctx context.Context) ([]MealTime, error) {
	resp, err := r.client.Request(ctx, EndpointMealTimes, RequestOptions{
		Method:  http.MethodGet,
		Headers: map[string]string{"Cookie": r.activeCookie()},
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, httpError("list-meal-times", resp)
	}

	var payload map[string]interface{}
	if err := resp.JSON(&payload); err != nil {
		return nil, opError(err, "list-meal-times")
	}
	data, ok := payload["data"].([]interface{})
	if !ok {
		return []MealTime{}, nil
	}

	mealTimes := make([]MealTime, 0, len(data))
	for _, element := range data {
		object, err := objectElement("list-meal-times", element)
		if err != nil {
			return nil, err
		}
		id, ok := stringField(object, "code")
		if !ok {
			return nil, shapeError("list-meal-times", "code missing or not a string", element)
		}
		name, ok := stringField(object, "codeNm")
		if !ok {
			return nil, shapeError("list-meal-times", "codeNm missing or not a string", element)
		}
		mealTimes = append(mealTimes, MealTime{ID: id, Name: name})
	}
	return mealTimes, nil
}

// ListMeals returns the meals served on a YYYYMMDD date under the given meal
// time. Unlike the meal-time and menu listings, a response without
// data.mealList is a hard failure, not an empty list. One invalid element
// fails the whole call.
func (r *Restaurant) ListMeals(ctx context.Context, date int, mealTimeID string) ([]*Meal, error) {
	resp, err := r.client.Request(ctx, EndpointMeals(date, mealTimeID, r.ID), RequestOptions{Method: http.MethodGet})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, httpError("list-meals", resp)
	}

	var payload map[string]interface{}
	if err := resp.JSON(&payload); err != nil {
		return nil, opError(err, "list-meals")
	}
	data, ok := payload["data"].(map[string]interface{})
	if !ok {
		return nil, shapeError("list-meals", "data field missing or not an object", payload)
	}
	mealList, ok := data["mealList"].([]interface{})
	if !ok {
		return nil, shapeError("list-meals", "data.mealList missing or not an array", payload)
	}

	meals := make([]*Meal, 0, len(mealList))
	for _, element := range mealList {
		meal, err := decodeMeal(r, date, mealTimeID, element)
		if err != nil {
			return nil, err
		}
		meals = append(meals, meal)
	}
	return meals, nil
}
