package store

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totok22/quicksales-backend/models"
)

func numberSettings(format string, resetDaily bool, digits int) *models.AppSettings {
	s := models.DefaultSettings()
	s.OrderNumberFormat = format
	s.OrderNumberResetDaily = resetDaily
	s.OrderNumberDigits = digits
	return s
}

func TestGenerateOrderNumberStartsAtOne(t *testing.T) {
	s := newTestStore(t)
	settings := numberSettings("NO.{SEQ:6}", true, 6)

	number, err := s.GenerateOrderNumber(settings, "")
	require.NoError(t, err)
	assert.Equal(t, "NO.000001", number)

	// Generation alone issues nothing; without an inserted order the next
	// call yields the same value.
	number, err = s.GenerateOrderNumber(settings, "")
	require.NoError(t, err)
	assert.Equal(t, "NO.000001", number)
}

func TestGenerateOrderNumberContinuesFromLastOrder(t *testing.T) {
	s := newTestStore(t)

	today := time.Now().Format("2006-01-02")
	order := testOrder("o1", "c1", today)
	order.OrderNumber = "20240101_000005"
	require.NoError(t, s.InsertOrder(&order))

	settings := numberSettings("{YYYY}{MM}{DD}_{SEQ:6}", true, 6)
	number, err := s.GenerateOrderNumber(settings, "")
	require.NoError(t, err)

	expectedPrefix := time.Now().Format("20060102") + "_"
	assert.True(t, strings.HasPrefix(number, expectedPrefix), number)
	assert.True(t, strings.HasSuffix(number, "000006"), number)
}

func TestGenerateOrderNumberUsesLastDigitRun(t *testing.T) {
	s := newTestStore(t)

	today := time.Now().Format("2006-01-02")
	order := testOrder("o1", "c1", today)
	order.OrderNumber = "A12B034"
	require.NoError(t, s.InsertOrder(&order))

	settings := numberSettings("{SEQ:3}", true, 3)
	number, err := s.GenerateOrderNumber(settings, "")
	require.NoError(t, err)
	assert.Equal(t, "035", number)
}

func TestGenerateOrderNumberDailyResetIgnoresOtherDays(t *testing.T) {
	s := newTestStore(t)

	yesterday := time.Now().Add(-24 * time.Hour).Format("2006-01-02")
	order := testOrder("o1", "c1", yesterday)
	order.OrderNumber = "NO.000099"
	require.NoError(t, s.InsertOrder(&order))

	settings := numberSettings("NO.{SEQ:6}", true, 6)
	number, err := s.GenerateOrderNumber(settings, "")
	require.NoError(t, err)
	assert.Equal(t, "NO.000001", number)

	// Without daily reset, yesterday's order is the reference.
	settings = numberSettings("NO.{SEQ:6}", false, 6)
	number, err = s.GenerateOrderNumber(settings, "")
	require.NoError(t, err)
	assert.Equal(t, "NO.000100", number)
}

func TestGenerateOrderNumberDefaultWidth(t *testing.T) {
	s := newTestStore(t)

	settings := numberSettings("NO.{SEQ}", true, 4)
	number, err := s.GenerateOrderNumber(settings, "")
	require.NoError(t, err)
	assert.Equal(t, "NO.0001", number)
}

func TestGenerateOrderNumberNoSeqToken(t *testing.T) {
	s := newTestStore(t)

	settings := numberSettings("FIXED", true, 6)
	number, err := s.GenerateOrderNumber(settings, "")
	require.NoError(t, err)
	assert.Equal(t, "FIXED", number)
}

func TestExpandDateTokens(t *testing.T) {
	at := time.Date(2026, 3, 7, 10, 0, 0, 0, time.Local)

	assert.Equal(t, "20260307", expandDateTokens("{YYYY}{MM}{DD}", at))
	assert.Equal(t, "26-3-7", expandDateTokens("{YY}-{M}-{D}", at))
	assert.Equal(t, "plain", expandDateTokens("plain", at))
}

func TestLastDigitRun(t *testing.T) {
	n, ok := lastDigitRun("20240101_000005")
	require.True(t, ok)
	assert.Equal(t, uint64(5), n)

	n, ok = lastDigitRun("A12B034")
	require.True(t, ok)
	assert.Equal(t, uint64(34), n)

	_, ok = lastDigitRun("NO.ABC")
	assert.False(t, ok)
}

func pipelineOrder(id string) models.Order {
	now := time.Now()
	qty := 2.0
	productID := "p1"
	return models.Order{
		ID:          id,
		Date:        now.Format("2006-01-02"),
		CustomerID:  "c1",
		Customer:    testCustomer("c1", "张三", "13800000000", ""),
		TotalAmount: 200,
		Status:      "saved",
		CreatedAt:   now,
		UpdatedAt:   now,
		Items: []models.OrderItem{
			{
				ProductID: &productID,
				Name:      "机油",
				Unit:      "瓶",
				Price:     100,
				Quantity:  qty,
				SortValue: 1,
			},
		},
	}
}

func trackedProduct(id string, stock float64) models.Product {
	now := time.Now()
	return models.Product{
		ID:         id,
		Name:       "机油",
		Unit:       "瓶",
		Price:      100,
		Stock:      floatPtr(stock),
		TrackStock: boolPtr(true),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestSaveOrderInsertsAndDeductsStock(t *testing.T) {
	s := newTestStore(t)

	product := trackedProduct("p1", 10)
	require.NoError(t, s.InsertProduct(&product))

	order := pipelineOrder("o1")
	number, err := s.SaveOrder(&order)
	require.NoError(t, err)
	assert.NotEmpty(t, number)

	saved, err := s.GetOrderByID("o1")
	require.NoError(t, err)
	assert.Equal(t, number, saved.OrderNumber)

	items, err := s.GetOrderItems("o1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "o1_p1", items[0].RowID)

	after, err := s.GetProductByID("p1")
	require.NoError(t, err)
	require.NotNil(t, after.Stock)
	assert.Equal(t, 8.0, *after.Stock)

	customer, err := s.GetCustomerByID("c1")
	require.NoError(t, err)
	assert.NotNil(t, customer.LastPurchaseAt)
}

func TestSaveOrderUpdateDoesNotRedeductStock(t *testing.T) {
	s := newTestStore(t)

	product := trackedProduct("p1", 10)
	require.NoError(t, s.InsertProduct(&product))

	order := pipelineOrder("o1")
	_, err := s.SaveOrder(&order)
	require.NoError(t, err)

	// Saving the same order again takes the metadata update path.
	updated := pipelineOrder("o1")
	updated.OrderNumber = order.OrderNumber
	updated.TotalAmount = 300
	_, err = s.SaveOrder(&updated)
	require.NoError(t, err)

	after, err := s.GetProductByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 8.0, *after.Stock)

	saved, err := s.GetOrderByID("o1")
	require.NoError(t, err)
	assert.Equal(t, 300.0, saved.TotalAmount)

	orders, err := s.GetAllOrders()
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestSaveOrderKeepsClientNumber(t *testing.T) {
	s := newTestStore(t)

	order := pipelineOrder("o1")
	order.OrderNumber = "CUSTOM-7"
	number, err := s.SaveOrder(&order)
	require.NoError(t, err)
	assert.Equal(t, "CUSTOM-7", number)
}

func TestSaveOrderTemporaryCustomerBecomesSnapshot(t *testing.T) {
	s := newTestStore(t)

	order := pipelineOrder("o1")
	order.CustomerID = models.TempIDPrefix + "local1"
	order.Customer = testCustomer(models.TempIDPrefix+"local1", "散客", "", "")

	_, err := s.SaveOrder(&order)
	require.NoError(t, err)

	snapshotID := models.OrderSnapshotID("o1")
	assert.Equal(t, snapshotID, order.CustomerID)

	snapshot, err := s.GetCustomerByID(snapshotID)
	require.NoError(t, err)
	assert.Equal(t, "散客", snapshot.Name)
	// Snapshot rows never get a purchase stamp.
	assert.Nil(t, snapshot.LastPurchaseAt)

	customers, err := s.GetAllCustomers()
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestSaveOrderRedirectsToMatchedCustomer(t *testing.T) {
	s := newTestStore(t)

	existing := testCustomer("c9", "张先生", "13800000000", "")
	require.NoError(t, s.InsertCustomer(&existing))

	order := pipelineOrder("o1")
	order.CustomerID = "c-new"
	order.Customer = testCustomer("c-new", "张三", "13800000000", "")

	_, err := s.SaveOrder(&order)
	require.NoError(t, err)
	assert.Equal(t, "c9", order.CustomerID)

	saved, err := s.GetOrderByID("o1")
	require.NoError(t, err)
	assert.Equal(t, "c9", saved.CustomerID)
}

func TestSaveOrderPersistsCustomerEdits(t *testing.T) {
	s := newTestStore(t)

	existing := testCustomer("c1", "张三", "13800000000", "")
	require.NoError(t, s.InsertCustomer(&existing))

	order := pipelineOrder("o1")
	order.Customer.Name = "张先生"

	_, err := s.SaveOrder(&order)
	require.NoError(t, err)
	assert.Equal(t, "c1", order.CustomerID)

	saved, err := s.GetCustomerByID("c1")
	require.NoError(t, err)
	assert.Equal(t, "张先生", saved.Name)
	assert.Equal(t, "13800000000", saved.Phone)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	s := newTestStore(t)

	order := pipelineOrder("o1")
	_, err := s.SaveOrder(&order)
	require.NoError(t, err)

	require.NoError(t, s.DeleteOrder("o1"))

	_, err = s.GetOrderByID("o1")
	assert.True(t, IsNotFound(err))

	items, err := s.GetOrderItems("o1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetAllOrdersHydrates(t *testing.T) {
	s := newTestStore(t)

	for i := 1; i <= 2; i++ {
		order := pipelineOrder(fmt.Sprintf("o%d", i))
		_, err := s.SaveOrder(&order)
		require.NoError(t, err)
	}

	orders, err := s.GetAllOrders()
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, "张三", o.Customer.Name)
		assert.Len(t, o.Items, 1)
	}
}
