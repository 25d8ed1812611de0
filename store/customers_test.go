package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totok22/quicksales-backend/models"
)

func TestOverlayCustomerIncomingWinsUnlessEmpty(t *testing.T) {
	now := time.Now()
	addr := "旧地址"
	existing := testCustomer("c1", "张三", "13800000000", "京A11111")
	existing.Address = &addr

	incoming := models.Customer{
		Name:  "  李四  ",
		Phone: "",
	}

	merged := overlayCustomer(incoming, existing, now)

	assert.Equal(t, "c1", merged.ID)
	assert.Equal(t, "李四", merged.Name)
	assert.Equal(t, "13800000000", merged.Phone)
	assert.Equal(t, "京A11111", merged.LicensePlate)
	require.NotNil(t, merged.Address)
	assert.Equal(t, addr, *merged.Address)
	assert.Equal(t, now, merged.UpdatedAt)
}

func TestOverlayCustomerWhitespaceIsEmpty(t *testing.T) {
	existing := testCustomer("c1", "张三", "13800000000", "")
	incoming := models.Customer{Name: "   ", Phone: "   "}

	merged := overlayCustomer(incoming, existing, time.Now())

	assert.Equal(t, "张三", merged.Name)
	assert.Equal(t, "13800000000", merged.Phone)
}

func TestFindByIdentityMatchesPhoneOrPlate(t *testing.T) {
	s := newTestStore(t)

	byPhone := testCustomer("c1", "张三", "13800000000", "")
	byPlate := testCustomer("c2", "李四", "", "京A22222")
	require.NoError(t, s.InsertCustomer(&byPhone))
	require.NoError(t, s.InsertCustomer(&byPlate))

	found, err := s.FindByIdentity("13800000000", "")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "c1", found.ID)

	found, err = s.FindByIdentity("", "京A22222")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "c2", found.ID)

	found, err = s.FindByIdentity("", "")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestFindByIdentityEmptyKeyNeverMatchesEmptyColumn(t *testing.T) {
	s := newTestStore(t)

	noPlate := testCustomer("c1", "张三", "13800000000", "")
	require.NoError(t, s.InsertCustomer(&noPlate))

	// Searching by phone only must not match c1 via the empty plate.
	found, err := s.FindByIdentity("13900000000", "")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestFindByIdentityPrefersMostRecentlyUpdated(t *testing.T) {
	s := newTestStore(t)

	older := testCustomer("c1", "张三", "13800000000", "")
	older.UpdatedAt = time.Now().Add(-time.Hour)
	newer := testCustomer("c2", "张三", "13800000000", "")
	require.NoError(t, s.InsertCustomer(&older))
	require.NoError(t, s.InsertCustomer(&newer))

	found, err := s.FindByIdentity("13800000000", "")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "c2", found.ID)
}

func TestFindByIdentityIgnoresHiddenIdentities(t *testing.T) {
	s := newTestStore(t)

	snapshot := testCustomer(models.OrderSnapshotID("o1"), "散客", "13800000000", "")
	require.NoError(t, s.InsertCustomer(&snapshot))

	found, err := s.FindByIdentity("13800000000", "")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestListingExcludesHiddenIdentities(t *testing.T) {
	s := newTestStore(t)

	regular := testCustomer("c1", "张三", "13800000000", "")
	temp := testCustomer(models.TempIDPrefix+"abc", "临时", "", "")
	snapshot := testCustomer(models.OrderSnapshotID("o1"), "散客", "", "")
	placeholder := testCustomer(models.DeletedPlaceholderID("c9"), "已删除客户（历史保留）", "", "")
	for _, c := range []*models.Customer{&regular, &temp, &snapshot, &placeholder} {
		require.NoError(t, s.InsertCustomer(c))
	}

	customers, err := s.GetAllCustomers()
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "c1", customers[0].ID)

	results, err := s.SearchCustomers("客")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestResolveCustomerMatchAbsorbsIncoming(t *testing.T) {
	s := newTestStore(t)

	existing := testCustomer("c1", "张三", "13800000000", "")
	require.NoError(t, s.InsertCustomer(&existing))

	incoming := testCustomer("c2", "张先生", "13800000000", "京A33333")
	resolvedID, err := s.ResolveCustomer(&incoming, false, "o1")
	require.NoError(t, err)
	assert.Equal(t, "c1", resolvedID)

	merged, err := s.GetCustomerByID("c1")
	require.NoError(t, err)
	assert.Equal(t, "张先生", merged.Name)
	assert.Equal(t, "京A33333", merged.LicensePlate)

	// The incoming row was never inserted.
	_, err = s.GetCustomerByID("c2")
	assert.True(t, IsNotFound(err))
}

func TestResolveCustomerSameRowStillAbsorbsIncoming(t *testing.T) {
	s := newTestStore(t)

	existing := testCustomer("c1", "张三", "13800000000", "")
	require.NoError(t, s.InsertCustomer(&existing))

	// The match is the very row being referenced; the edits still land.
	incoming := testCustomer("c1", "张先生", "13800000000", "京A33333")
	resolvedID, err := s.ResolveCustomer(&incoming, false, "o1")
	require.NoError(t, err)
	assert.Equal(t, "c1", resolvedID)

	merged, err := s.GetCustomerByID("c1")
	require.NoError(t, err)
	assert.Equal(t, "张先生", merged.Name)
	assert.Equal(t, "京A33333", merged.LicensePlate)
}

func TestResolveCustomerNoMatchInserts(t *testing.T) {
	s := newTestStore(t)

	incoming := testCustomer("c1", "张三", "13800000000", "")
	resolvedID, err := s.ResolveCustomer(&incoming, false, "o1")
	require.NoError(t, err)
	assert.Equal(t, "c1", resolvedID)

	inserted, err := s.GetCustomerByID("c1")
	require.NoError(t, err)
	assert.Equal(t, "张三", inserted.Name)
}

func TestResolveCustomerTemporaryBecomesSnapshot(t *testing.T) {
	s := newTestStore(t)

	// A regular customer with the same phone must not be matched.
	regular := testCustomer("c1", "张三", "13800000000", "")
	require.NoError(t, s.InsertCustomer(&regular))

	incoming := testCustomer(models.TempIDPrefix+"xyz", "散客", "13800000000", "")
	resolvedID, err := s.ResolveCustomer(&incoming, true, "o1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderSnapshotID("o1"), resolvedID)

	snapshot, err := s.GetCustomerByID(resolvedID)
	require.NoError(t, err)
	assert.Equal(t, "散客", snapshot.Name)

	// Resolving again for the same order is idempotent.
	again := testCustomer(models.TempIDPrefix+"xyz", "散客", "13800000000", "")
	resolvedID2, err := s.ResolveCustomer(&again, true, "o1")
	require.NoError(t, err)
	assert.Equal(t, resolvedID, resolvedID2)
}

func TestMergeCustomersTargetWinsAndOrdersRepoint(t *testing.T) {
	s := newTestStore(t)

	sourceAddr := "source address"
	lastPurchase := time.Now().Add(-24 * time.Hour)
	source := testCustomer("src", "张三", "13800000000", "京A11111")
	source.Address = &sourceAddr
	source.LastPurchaseAt = &lastPurchase
	target := testCustomer("dst", "张先生", "", "")
	require.NoError(t, s.InsertCustomer(&source))
	require.NoError(t, s.InsertCustomer(&target))

	for _, id := range []string{"o1", "o2", "o3"} {
		order := testOrder(id, "src", "2026-08-25")
		require.NoError(t, s.InsertOrder(&order))
	}

	require.NoError(t, s.MergeCustomers("src", "dst"))

	merged, err := s.GetCustomerByID("dst")
	require.NoError(t, err)
	assert.Equal(t, "张先生", merged.Name)
	assert.Equal(t, "13800000000", merged.Phone)
	assert.Equal(t, "京A11111", merged.LicensePlate)
	require.NotNil(t, merged.Address)
	assert.Equal(t, sourceAddr, *merged.Address)
	require.NotNil(t, merged.LastPurchaseAt)

	_, err = s.GetCustomerByID("src")
	assert.True(t, IsNotFound(err))

	orders, err := s.GetAllOrders()
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for _, o := range orders {
		assert.Equal(t, "dst", o.CustomerID)
	}
}

func TestMergeCustomersRejectsSameID(t *testing.T) {
	s := newTestStore(t)
	err := s.MergeCustomers("c1", "c1")
	require.Error(t, err)
}

func TestDeleteCustomerRepointsOrdersAtPlaceholder(t *testing.T) {
	s := newTestStore(t)

	customer := testCustomer("c1", "张三", "13800000000", "")
	require.NoError(t, s.InsertCustomer(&customer))
	for _, id := range []string{"o1", "o2", "o3"} {
		order := testOrder(id, "c1", "2026-08-25")
		require.NoError(t, s.InsertOrder(&order))
	}

	require.NoError(t, s.DeleteCustomer("c1"))

	_, err := s.GetCustomerByID("c1")
	assert.True(t, IsNotFound(err))

	placeholderID := models.DeletedPlaceholderID("c1")
	placeholder, err := s.GetCustomerByID(placeholderID)
	require.NoError(t, err)
	assert.Equal(t, deletedPlaceholderName, placeholder.Name)
	require.NotNil(t, placeholder.Address)
	assert.Equal(t, deletedPlaceholderAddrPrefix+"c1", *placeholder.Address)

	orders, err := s.GetAllOrders()
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for _, o := range orders {
		assert.Equal(t, placeholderID, o.CustomerID)
	}
}

func TestDeleteCustomerTwiceReusesPlaceholder(t *testing.T) {
	s := newTestStore(t)

	first := testCustomer("c1", "张三", "", "")
	require.NoError(t, s.InsertCustomer(&first))
	require.NoError(t, s.DeleteCustomer("c1"))

	// The same ID deleted again reuses the existing placeholder row.
	second := testCustomer("c1", "张三二号", "", "")
	require.NoError(t, s.InsertCustomer(&second))
	require.NoError(t, s.DeleteCustomer("c1"))

	placeholder, err := s.GetCustomerByID(models.DeletedPlaceholderID("c1"))
	require.NoError(t, err)
	assert.Equal(t, deletedPlaceholderName, placeholder.Name)
}

func TestSaveCustomerInsertsThenUpdates(t *testing.T) {
	s := newTestStore(t)

	c := testCustomer("c1", "张三", "13800000000", "")
	require.NoError(t, s.SaveCustomer(&c))

	c.Name = "张先生"
	require.NoError(t, s.SaveCustomer(&c))

	saved, err := s.GetCustomerByID("c1")
	require.NoError(t, err)
	assert.Equal(t, "张先生", saved.Name)

	all, err := s.GetAllCustomers()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
