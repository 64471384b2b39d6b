// Package checkout implements the three-step checkout wizard: a linear
// state machine gating Address → Delivery → Payment, computing order
// totals from the cart plus the delivery surcharge, and submitting the
// final order to the external API. The wizard owns no rendering;
// interested layers subscribe to state-change events.
//
// Like the cart store, a Wizard is owned by the single event loop
// driving the UI and is not safe for concurrent use.
package checkout

import (
	"context"
	"log/slog"

	"github.com/Jurgensen-SJB/supermercado/internal/cart"
	apperrors "github.com/Jurgensen-SJB/supermercado/internal/errors"
	"github.com/Jurgensen-SJB/supermercado/internal/metrics"
	"github.com/Jurgensen-SJB/supermercado/internal/models"
	"github.com/go-playground/validator/v10"
)

type Step int

const (
	StepAddress  Step = 1
	StepDelivery Step = 2
	StepPayment  Step = 3
)

// TaxRate is applied to the sanitized subtotal at summary and
// submission time.
const TaxRate = 0.08

// Placeholder address captured for pickup orders instead of requiring
// street fields.
const (
	pickupPlaceholder = "Recoger en tienda"
	pickupPostalCode  = "N/A"
)

// Event describes a wizard state change for subscribers.
type Event struct {
	Kind string
	Step Step
}

const (
	EventStepChanged = "step_changed"
	EventCompleted   = "completed"
	EventReset       = "reset"
)

// OrderPlacer is the slice of the API client the wizard needs.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
}

// UserProvider yields the authenticated shopper, nil when logged out.
type UserProvider interface {
	CurrentUser(ctx context.Context) (*models.User, error)
}

type Wizard struct {
	cart     *cart.Store
	orders   OrderPlacer
	sessions UserProvider
	validate *validator.Validate

	open        bool
	step        Step
	addressForm models.AddressForm
	address     models.ShippingAddress
	delivery    models.DeliveryMethod
	payment     models.PaymentMethod
	card        models.CardForm

	subscribers []func(Event)
}

func NewWizard(cartStore *cart.Store, orders OrderPlacer, sessions UserProvider) *Wizard {
	w := &Wizard{
		cart:     cartStore,
		orders:   orders,
		sessions: sessions,
		validate: newValidator(),
	}
	w.resetState()

	return w
}

func (w *Wizard) Subscribe(fn func(Event)) {
	w.subscribers = append(w.subscribers, fn)
}

func (w *Wizard) publish(event Event) {
	for _, fn := range w.subscribers {
		fn(event)
	}
}

func (w *Wizard) resetState() {
	w.open = false
	w.step = StepAddress
	w.addressForm = models.AddressForm{}
	w.address = models.ShippingAddress{}
	w.delivery = models.DeliveryStandard
	w.payment = models.PaymentCard
	w.card = models.CardForm{}
}

// Open starts a fresh checkout. An empty cart blocks entry entirely.
func (w *Wizard) Open(ctx context.Context) error {
	count, err := w.cart.Count(ctx)
	if err != nil {
		return err
	}

	if count == 0 {
		return apperrors.BadRequestError("No hay productos en el carrito")
	}

	w.resetState()
	w.open = true
	w.publish(Event{Kind: EventStepChanged, Step: w.step})

	return nil
}

// Close cancels the wizard and resets its state. The cart is untouched.
func (w *Wizard) Close() {
	w.resetState()
	w.publish(Event{Kind: EventReset, Step: w.step})
}

func (w *Wizard) IsOpen() bool {
	return w.open
}

func (w *Wizard) Step() Step {
	return w.step
}

func (w *Wizard) DeliveryMethod() models.DeliveryMethod {
	return w.delivery
}

func (w *Wizard) PaymentMethod() models.PaymentMethod {
	return w.payment
}

// Address returns the captured shipping address after step one passed.
func (w *Wizard) Address() models.ShippingAddress {
	return w.address
}

// Back navigates one step toward Address. Backward navigation is always
// permitted and discards no data.
func (w *Wizard) Back() {
	if w.step > StepAddress {
		w.step--
		w.publish(Event{Kind: EventStepChanged, Step: w.step})
	}
}

// GoToAddress jumps back to the first step from anywhere.
func (w *Wizard) GoToAddress() {
	if w.step != StepAddress {
		w.step = StepAddress
		w.publish(Event{Kind: EventStepChanged, Step: w.step})
	}
}

// SubmitAddress validates the step-one form against the current
// delivery method and, on success, captures the shipping address and
// advances to Delivery. Pickup orders only require a name and a phone;
// the street fields get store-pickup placeholders.
func (w *Wizard) SubmitAddress(form models.AddressForm) error {
	trimmed := trimAddressForm(form)
	w.addressForm = trimmed

	if verr := w.validateAddress(trimmed); verr != nil {
		return verr
	}

	w.address = w.captureAddress(trimmed)
	w.step = StepDelivery
	w.publish(Event{Kind: EventStepChanged, Step: w.step})

	return nil
}

func (w *Wizard) validateAddress(trimmed models.AddressForm) *ValidationError {
	if w.delivery == models.DeliveryPickup {
		return validateStruct(w.validate, pickupAddressForm{
			FirstName: trimmed.FirstName,
			LastName:  trimmed.LastName,
			Phone:     trimmed.Phone,
		})
	}

	return validateStruct(w.validate, trimmed)
}

func (w *Wizard) captureAddress(trimmed models.AddressForm) models.ShippingAddress {
	if w.delivery == models.DeliveryPickup {
		return models.ShippingAddress{
			FirstName:  trimmed.FirstName,
			LastName:   trimmed.LastName,
			Phone:      trimmed.Phone,
			Address:    pickupPlaceholder,
			City:       pickupPlaceholder,
			PostalCode: pickupPostalCode,
		}
	}

	return models.ShippingAddress(trimmed)
}

// SelectDelivery records the delivery method. Selection alone gates
// nothing; ContinueToPayment advances unconditionally.
func (w *Wizard) SelectDelivery(method models.DeliveryMethod) {
	w.delivery = method
}

// ContinueToPayment advances from Delivery to Payment.
func (w *Wizard) ContinueToPayment() {
	if w.step == StepDelivery {
		w.step = StepPayment
		w.publish(Event{Kind: EventStepChanged, Step: w.step})
	}
}

func (w *Wizard) SelectPayment(method models.PaymentMethod) {
	w.payment = method
}

// sanitizeItems re-applies the cart's own filter at submission time:
// coerced non-positive prices or quantities drop the item before any
// total is computed.
func sanitizeItems(items []models.CartLineItem) []models.CartLineItem {
	kept := make([]models.CartLineItem, 0, len(items))

	for _, item := range items {
		if item.UnitPrice > 0 && item.Quantity > 0 {
			kept = append(kept, item)
		}
	}

	return kept
}

func computeTotals(items []models.CartLineItem, delivery models.DeliveryMethod) models.OrderTotals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}

	subtotal = max(0, subtotal)
	tax := max(0, subtotal*TaxRate)
	shipping := max(0, delivery.ShippingCost())

	return models.OrderTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    max(0, subtotal+tax+shipping),
	}
}

// Totals computes the order summary from the sanitized cart and the
// selected delivery method.
func (w *Wizard) Totals(ctx context.Context) (models.OrderTotals, error) {
	items, err := w.cart.List(ctx)
	if err != nil {
		return models.OrderTotals{}, err
	}

	return computeTotals(sanitizeItems(items), w.delivery), nil
}

// Submit runs the Payment → Completed transition: re-validate the
// address, gate card payments on a complete card form, re-sanitize the
// cart, and place the order. On success the cart is cleared and the
// wizard resets; on API failure the wizard stays in Payment so the
// shopper can retry by hand.
func (w *Wizard) Submit(ctx context.Context, card models.CardForm) (*models.Order, error) {
	if verr := w.validateAddress(w.addressForm); verr != nil {
		w.step = StepAddress
		w.publish(Event{Kind: EventStepChanged, Step: w.step})

		return nil, verr
	}

	if w.payment == models.PaymentCard {
		trimmed := trimCardForm(card)
		if verr := validateStruct(w.validate, trimmed); verr != nil {
			return nil, verr
		}

		w.card = trimmed
	}

	items, err := w.cart.List(ctx)
	if err != nil {
		return nil, err
	}

	items = sanitizeItems(items)
	if len(items) == 0 {
		return nil, apperrors.BadRequestError("No hay productos en el carrito")
	}

	// programmer-error guards, not expected user paths
	if w.payment == "" {
		return nil, apperrors.InvariantError("Método de pago no seleccionado")
	}

	if w.delivery == "" {
		return nil, apperrors.InvariantError("Método de entrega no seleccionado")
	}

	user, err := w.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, apperrors.UnauthorizedError("Usuario no autenticado")
	}

	totals := computeTotals(items, w.delivery)

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice,
		})
	}

	req := &models.CreateOrderRequest{
		Items:          orderItems,
		UserID:         user.ID,
		PaymentMethod:  w.payment,
		DeliveryMethod: w.delivery,
		ShippingCost:   totals.Shipping,
	}

	order, err := w.orders.CreateOrder(ctx, req)
	if err != nil {
		metrics.CountOrderSubmission("failure")
		slog.Error("Order submission failed", slog.String("error", err.Error()))

		return nil, err
	}

	metrics.CountOrderSubmission("success")
	slog.Info("Order placed",
		slog.String("order_id", order.ID.String()),
		slog.String("user_id", user.ID.String()),
		slog.Float64("total", totals.Total))

	if err := w.cart.Clear(ctx); err != nil {
		// the order went through; a failed local clear must not fail the flow
		slog.Warn("Failed to clear cart after order", slog.String("error", err.Error()))
	}

	w.resetState()
	w.publish(Event{Kind: EventCompleted, Step: w.step})

	return order, nil
}
