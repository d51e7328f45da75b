package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOrderRequest(t *testing.T) {
	assert.Nil(t, Validate(OrderRequest{Quantity: 2, ProductID: 1}))

	details := Validate(OrderRequest{Quantity: 0, ProductID: 1})
	assert.Equal(t, "must be greater than 0", details["quantity"])

	details = Validate(OrderRequest{Quantity: 2147483648, ProductID: 1})
	assert.Equal(t, "must be at most 2147483647", details["quantity"])
	assert.Nil(t, Validate(OrderRequest{Quantity: 2147483647, ProductID: 1}))

	details = Validate(OrderRequest{Quantity: -3})
	assert.Contains(t, details, "quantity")
	assert.Equal(t, "field required", details["product_id"])
}

func TestValidateSignUpRequest(t *testing.T) {
	assert.Nil(t, Validate(SignUpRequest{Username: "samariddin", Email: "sam@example.com", Password: "samariddin7444"}))

	details := Validate(SignUpRequest{Username: "a-very-long-username-over-25", Email: "nope", Password: "pw"})
	assert.Equal(t, "must be at most 25 characters", details["username"])
	assert.Equal(t, "must be a valid email address", details["email"])
	assert.Contains(t, details, "password")
}

func TestValidateOrderStatusRequest(t *testing.T) {
	assert.Nil(t, Validate(OrderStatusRequest{OrderStatus: "IN_TRANSIT"}))
	details := Validate(OrderStatusRequest{OrderStatus: "LOST"})
	assert.Equal(t, "must be one of [PENDING IN_TRANSIT DELIVERED]", details["order_status"])
}

func TestValidateProductRequest(t *testing.T) {
	assert.Nil(t, Validate(ProductRequest{Name: "osh", Price: 0}))
	details := Validate(ProductRequest{Price: -1})
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "price")
}
