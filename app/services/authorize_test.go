package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/services"
)

func TestAuthorize(t *testing.T) {
	staff := &models.User{ID: 1, IsStaff: true}
	customer := &models.User{ID: 2}

	ops := []services.Operation{
		services.OpCreateProduct, services.OpListProducts, services.OpShowProduct,
		services.OpUpdateProduct, services.OpDeleteProduct,
		services.OpListOrders, services.OpShowOrder, services.OpUpdateOrderStatus,
	}
	for _, op := range ops {
		assert.NoError(t, services.Authorize(staff, op), op)

		err := services.Authorize(customer, op)
		assert.ErrorIs(t, err, services.ErrForbidden, op)
		assert.NotEmpty(t, err.Error(), op)

		assert.ErrorIs(t, services.Authorize(nil, op), services.ErrForbidden, op)
	}

	assert.Equal(t, "Only admin can add new product", services.Authorize(customer, services.OpCreateProduct).Error())
	assert.ErrorIs(t, services.Authorize(staff, services.Operation("nope")), services.ErrForbidden)
}
