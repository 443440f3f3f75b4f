package orders

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"foodie-api/apperrors"
	"foodie-api/config"
	"foodie-api/models"
	"foodie-api/store"
)

var testDBSeq atomic.Int64

type fixture struct {
	st      *store.Store
	m       *Manager
	user    *models.User
	address *models.Address
}

// newFixture opens an isolated in-memory database seeded with the demo
// catalog plus one customer with a default address.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:orderstest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := config.Open(dsn)
	require.NoError(t, err)

	// single connection so concurrent callers contend on the guarded UPDATE,
	// not on sqlite's shared-cache locks
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	st := store.New(db)
	require.NoError(t, st.Seed())

	user := &models.User{Email: "customer@example.com", Name: "Asha", Role: models.RoleCustomer}
	require.NoError(t, st.CreateUser(user))
	address := &models.Address{UserID: user.ID, Label: "Home", FullAddress: "12 Main St", IsDefault: true}
	require.NoError(t, st.CreateAddress(address))

	return &fixture{st: st, m: NewManager(st, zap.NewNop()), user: user, address: address}
}

func (f *fixture) input(items ...ItemInput) CreateOrderInput {
	return CreateOrderInput{
		UserID:        f.user.ID,
		RestaurantID:  "rest-1",
		AddressID:     f.address.ID,
		Items:         items,
		PaymentMethod: models.PaymentUPI,
	}
}

// newPartner registers a rider user with an online, available profile.
func (f *fixture) newPartner(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: "Rider", Role: models.RoleDeliveryPartner}
	require.NoError(t, f.st.CreateUser(user))
	require.NoError(t, f.st.CreateDeliveryPartner(&models.DeliveryPartner{
		UserID: user.ID, VehicleType: "bike", IsOnline: true, IsAvailable: true,
	}))
	return user
}

func kindOf(t *testing.T, err error) apperrors.Kind {
	t.Helper()
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr), "expected *apperrors.Error, got %T", err)
	return appErr.Kind
}

func TestCreateOrderPricesAndFreezesSnapshot(t *testing.T) {
	f := newFixture(t)

	// 2x Paneer Tikka at 249 = 498: free delivery, 5% tax
	order, err := f.m.Create(f.input(ItemInput{DishID: "dish-1", Quantity: 2}))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, f.address.FullAddress, order.DeliveryAddress)
	assert.True(t, decimal.NewFromInt(498).Equal(order.Subtotal))
	assert.True(t, order.DeliveryFee.IsZero())
	assert.Equal(t, "24.90", order.Taxes.StringFixed(2))
	assert.Equal(t, "522.90", order.Total.StringFixed(2))

	// a later menu price change must not leak into the stored order
	_, err = f.st.UpdateDish("dish-1", map[string]any{"price": decimal.NewFromInt(999)})
	require.NoError(t, err)

	reloaded, err := f.st.GetOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, "Paneer Tikka", reloaded.Items[0].DishName)
	assert.True(t, decimal.NewFromInt(249).Equal(reloaded.Items[0].UnitPrice))
	assert.Equal(t, "522.90", reloaded.Total.StringFixed(2))
}

func TestCreateOrderPricesCustomizations(t *testing.T) {
	f := newFixture(t)

	in := f.input(ItemInput{
		DishID:   "dish-6",
		Quantity: 1,
		Customizations: []models.SelectedCustomization{
			{Name: "Size", SelectedOptions: []models.CustomizationOption{
				{Name: "Large", Price: decimal.NewFromInt(100)},
			}},
		},
	})
	in.RestaurantID = "rest-2"

	order, err := f.m.Create(in)
	require.NoError(t, err)
	// 299 base + 100 large
	assert.True(t, decimal.NewFromInt(399).Equal(order.Items[0].UnitPrice))
}

func TestCreateOrderRejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture(t)

	for _, qty := range []int{0, -3} {
		_, err := f.m.Create(f.input(ItemInput{DishID: "dish-1", Quantity: qty}))
		assert.Equal(t, apperrors.KindValidation, kindOf(t, err), "quantity %d", qty)
	}

	list, err := f.st.ListOrdersByUser(f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateOrderInputBindingValidatesItems(t *testing.T) {
	body := []byte(`{"userId":"u1","restaurantId":"rest-1","addressId":"a1",` +
		`"paymentMethod":"upi","items":[{"dishId":"dish-1","quantity":-3}]}`)
	var in CreateOrderInput
	assert.Error(t, binding.JSON.BindBody(body, &in))

	body = []byte(`{"userId":"u1","restaurantId":"rest-1","addressId":"a1",` +
		`"paymentMethod":"upi","items":[{"dishId":"dish-1","quantity":1}]}`)
	assert.NoError(t, binding.JSON.BindBody(body, &in))
}

func TestCreateOrderRejectsClientPriceMismatch(t *testing.T) {
	f := newFixture(t)

	_, err := f.m.Create(f.input(ItemInput{
		DishID:    "dish-1",
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(1),
	}))
	assert.Equal(t, apperrors.KindValidation, kindOf(t, err))
}

func TestCreateOrderRejectsForeignDish(t *testing.T) {
	f := newFixture(t)

	// dish-6 belongs to rest-2, the order targets rest-1
	_, err := f.m.Create(f.input(ItemInput{DishID: "dish-6", Quantity: 1}))
	assert.Equal(t, apperrors.KindValidation, kindOf(t, err))
}

func TestCreateOrderRejectsClosedRestaurant(t *testing.T) {
	f := newFixture(t)
	_, err := f.st.UpdateRestaurant("rest-1", map[string]any{"is_open": false})
	require.NoError(t, err)

	_, err = f.m.Create(f.input(ItemInput{DishID: "dish-1", Quantity: 1}))
	assert.Equal(t, apperrors.KindValidation, kindOf(t, err))
}

func TestCreateOrderRejectsForeignAddress(t *testing.T) {
	f := newFixture(t)
	other := &models.User{Email: "other@example.com", Name: "Other", Role: models.RoleCustomer}
	require.NoError(t, f.st.CreateUser(other))
	theirs := &models.Address{UserID: other.ID, Label: "Home", FullAddress: "1 Elsewhere"}
	require.NoError(t, f.st.CreateAddress(theirs))

	in := f.input(ItemInput{DishID: "dish-1", Quantity: 1})
	in.AddressID = theirs.ID
	_, err := f.m.Create(in)
	assert.Equal(t, apperrors.KindValidation, kindOf(t, err))
}

func TestCreateOrderAppliesCouponAndRedeemsOnce(t *testing.T) {
	f := newFixture(t)

	in := f.input(ItemInput{DishID: "dish-1", Quantity: 2}) // subtotal 498
	in.CouponCode = "first50"

	order, err := f.m.Create(in)
	require.NoError(t, err)
	// 50% of 498 capped at 100
	assert.True(t, decimal.NewFromInt(100).Equal(order.Discount))
	assert.Equal(t, "FIRST50", order.CouponCode)
	assert.Equal(t, "422.90", order.Total.StringFixed(2))

	coupon, err := f.st.GetCouponByCode("FIRST50")
	require.NoError(t, err)
	assert.Equal(t, 457, coupon.UsedCount) // seeded at 456
}

func TestCreateOrderRejectedCouponLeavesNoTrace(t *testing.T) {
	f := newFixture(t)

	// FLAT100 needs a 300 minimum; one Paneer Tikka is 249
	in := f.input(ItemInput{DishID: "dish-1", Quantity: 1})
	in.CouponCode = "FLAT100"

	_, err := f.m.Create(in)
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindCouponRejected, appErr.Kind)
	assert.Equal(t, "below_minimum", appErr.Reason)

	coupon, err := f.st.GetCouponByCode("FLAT100")
	require.NoError(t, err)
	assert.Equal(t, 123, coupon.UsedCount) // untouched

	list, err := f.st.ListOrdersByUser(f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTransitionStampsTimestampPerStep(t *testing.T) {
	f := newFixture(t)
	order, err := f.m.Create(f.input(ItemInput{DishID: "dish-1", Quantity: 1}))
	require.NoError(t, err)

	order, err = f.m.Transition(order.ID, models.StatusAccepted, "restaurant")
	require.NoError(t, err)
	assert.NotNil(t, order.AcceptedAt)
	assert.Nil(t, order.PreparingAt)

	order, err = f.m.Transition(order.ID, models.StatusPreparing, "restaurant")
	require.NoError(t, err)
	assert.NotNil(t, order.PreparingAt)
	assert.Nil(t, order.ReadyAt)
}

func TestTransitionRejectsSkippedStep(t *testing.T) {
	f := newFixture(t)
	order, err := f.m.Create(f.input(ItemInput{DishID: "dish-1", Quantity: 1}))
	require.NoError(t, err)

	_, err = f.m.Transition(order.ID, models.StatusPreparing, "restaurant")
	assert.Equal(t, apperrors.KindInvalidTransition, kindOf(t, err))

	// the failed attempt left the order untouched
	reloaded, err := f.st.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, reloaded.Status)
	assert.Nil(t, reloaded.PreparingAt)
}

func TestTransitionEnforcesActorRole(t *testing.T) {
	f := newFixture(t)
	order, err := f.m.Create(f.input(ItemInput{DishID: "dish-1", Quantity: 1}))
	require.NoError(t, err)

	_, err = f.m.Transition(order.ID, models.StatusAccepted, "partner")
	assert.Equal(t, apperrors.KindInvalidTransition, kindOf(t, err))
}

func TestTransitionRejectsTerminalOrders(t *testing.T) {
	f := newFixture(t)
	order, err := f.m.Create(f.input(ItemInput{DishID: "dish-1", Quantity: 1}))
	require.NoError(t, err)

	_, err = f.m.Transition(order.ID, models.StatusCancelled, "customer")
	require.NoError(t, err)

	_, err = f.m.Transition(order.ID, models.StatusAccepted, "restaurant")
	assert.Equal(t, apperrors.KindInvalidTransition, kindOf(t, err))
	_, err = f.m.Transition(order.ID, models.StatusCancelled, "customer")
	assert.Equal(t, apperrors.KindInvalidTransition, kindOf(t, err))
}

// walk the kitchen side of the lifecycle so the order becomes claimable
func readyOrder(t *testing.T, f *fixture) *models.Order {
	t.Helper()
	order, err := f.m.Create(f.input(ItemInput{DishID: "dish-1", Quantity: 1}))
	require.NoError(t, err)
	for _, next := range []models.OrderStatus{
		models.StatusAccepted, models.StatusPreparing, models.StatusReady,
	} {
		order, err = f.m.Transition(order.ID, next, "restaurant")
		require.NoError(t, err)
	}
	return order
}

func TestAcceptForDeliveryClaimsAndLosersConflict(t *testing.T) {
	f := newFixture(t)
	order := readyOrder(t, f)

	riderA := f.newPartner(t, "rider-a@example.com")
	riderB := f.newPartner(t, "rider-b@example.com")

	available, err := f.m.ListAvailableForDelivery()
	require.NoError(t, err)
	require.Len(t, available, 1)

	claimed, err := f.m.AcceptForDelivery(order.ID, riderA.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPickedUp, claimed.Status)
	require.NotNil(t, claimed.DeliveryPartnerID)
	assert.Equal(t, riderA.ID, *claimed.DeliveryPartnerID)
	assert.NotNil(t, claimed.PickedUpAt)

	_, err = f.m.AcceptForDelivery(order.ID, riderB.ID)
	assert.Equal(t, apperrors.KindConflict, kindOf(t, err))

	available, err = f.m.ListAvailableForDelivery()
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestAcceptForDeliveryConcurrentClaims(t *testing.T) {
	f := newFixture(t)
	order := readyOrder(t, f)
	riderA := f.newPartner(t, "rider-a@example.com")
	riderB := f.newPartner(t, "rider-b@example.com")

	type outcome struct {
		riderID string
		err     error
	}
	start := make(chan struct{})
	outcomes := make(chan outcome, 2)
	for _, id := range []string{riderA.ID, riderB.ID} {
		go func(riderID string) {
			<-start
			_, err := f.m.AcceptForDelivery(order.ID, riderID)
			outcomes <- outcome{riderID: riderID, err: err}
		}(id)
	}
	close(start)

	var winner string
	var lost []error
	for i := 0; i < 2; i++ {
		o := <-outcomes
		if o.err == nil {
			require.Empty(t, winner, "both partners claimed the same order")
			winner = o.riderID
		} else {
			lost = append(lost, o.err)
		}
	}
	require.NotEmpty(t, winner)
	require.Len(t, lost, 1)
	assert.Equal(t, apperrors.KindConflict, kindOf(t, lost[0]))

	reloaded, err := f.st.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPickedUp, reloaded.Status)
	require.NotNil(t, reloaded.DeliveryPartnerID)
	assert.Equal(t, winner, *reloaded.DeliveryPartnerID)
}

func TestAcceptForDeliveryRequiresOnlineAvailablePartner(t *testing.T) {
	f := newFixture(t)
	order := readyOrder(t, f)

	rider := f.newPartner(t, "rider@example.com")
	_, err := f.st.UpdateDeliveryPartnerByUser(rider.ID, map[string]any{"is_online": false})
	require.NoError(t, err)

	_, err = f.m.AcceptForDelivery(order.ID, rider.ID)
	assert.Equal(t, apperrors.KindValidation, kindOf(t, err))
}

func TestDeliveredBumpsPartnerCounter(t *testing.T) {
	f := newFixture(t)
	order := readyOrder(t, f)
	rider := f.newPartner(t, "rider@example.com")

	_, err := f.m.AcceptForDelivery(order.ID, rider.ID)
	require.NoError(t, err)

	delivered, err := f.m.Transition(order.ID, models.StatusDelivered, "partner")
	require.NoError(t, err)
	assert.NotNil(t, delivered.DeliveredAt)

	partner, err := f.st.GetDeliveryPartnerByUser(rider.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, partner.TotalDeliveries)
}

func TestValidateCouponIsReadOnly(t *testing.T) {
	f := newFixture(t)

	coupon, err := f.m.ValidateCoupon("first50", decimal.NewFromInt(200), "rest-1")
	require.NoError(t, err)
	assert.Equal(t, "FIRST50", coupon.Code)

	reloaded, err := f.st.GetCouponByCode("FIRST50")
	require.NoError(t, err)
	assert.Equal(t, 456, reloaded.UsedCount)

	_, err = f.m.ValidateCoupon("NOPE", decimal.NewFromInt(200), "rest-1")
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindCouponRejected, appErr.Kind)
	assert.Equal(t, "not_found", appErr.Reason)
}
