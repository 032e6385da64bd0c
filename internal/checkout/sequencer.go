// Package checkout turns a session's cart into an order through three timed
// phases: payment verification, stock allocation and courier sync.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/session"
	"storefront-be/internal/utils"
	"storefront-be/internal/validation"

	"go.uber.org/zap"
)

const (
	DefaultPhaseDelay = time.Second
	orderIDLength     = 6
	orderIDAttempts   = 5
)

// Catalog resolves current stock during allocation.
type Catalog interface {
	Get(ctx context.Context, id string) (product.Product, error)
}

// Observer hears every phase a session passes through, including Completed and Failed.
type Observer func(sessionID string, phase Phase)

type Options struct {
	// PhaseDelay is how long each phase takes unless PhaseDelays overrides it.
	PhaseDelay  time.Duration
	PhaseDelays map[Phase]time.Duration
	// FailureHook runs at the end of every phase; a non-nil error fails the checkout.
	FailureHook  func(ctx context.Context, phase Phase) error
	EnforceStock bool
	Observer     Observer
	Now          func() time.Time
	NewOrderID   func() (string, error)
	Metrics      *metrics.Storefront
}

func DefaultOptions() Options {
	return Options{PhaseDelay: DefaultPhaseDelay}
}

type Sequencer struct {
	orders  order.Service
	catalog Catalog
	opts    Options

	mu     sync.Mutex
	phases map[string]Phase
}

func NewSequencer(orders order.Service, catalog Catalog, opts Options) *Sequencer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewOrderID == nil {
		opts.NewOrderID = func() (string, error) { return utils.RandomCode("", orderIDLength) }
	}
	return &Sequencer{
		orders:  orders,
		catalog: catalog,
		opts:    opts,
		phases:  make(map[string]Phase),
	}
}

// Phase reports where the session's checkout currently is.
func (s *Sequencer) Phase(sessionID string) Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.phases[sessionID]; ok {
		return p
	}
	return PhaseIdle
}

func (s *Sequencer) enter(sessionID string, p Phase) {
	s.mu.Lock()
	if p == PhaseIdle {
		delete(s.phases, sessionID)
	} else {
		s.phases[sessionID] = p
	}
	s.mu.Unlock()

	if s.opts.Observer != nil && p != PhaseIdle {
		s.opts.Observer(sessionID, p)
	}
}

func (s *Sequencer) delay(p Phase) time.Duration {
	if d, ok := s.opts.PhaseDelays[p]; ok {
		return d
	}
	return s.opts.PhaseDelay
}

// Quote prices the session's cart for zone without touching any state.
func (s *Sequencer) Quote(sess *session.Session, zone order.DeliveryZone) (Quote, error) {
	if zone == "" {
		zone = order.ZoneInside
	}
	if !zone.Valid() {
		return Quote{}, fmt.Errorf("%w: unknown delivery zone %q", ErrInvalidForm, zone)
	}
	summary := sess.CartSummary()
	return PriceItems(summary.Items, zone), nil
}

func PriceItems(items []cart.Item, zone order.DeliveryZone) Quote {
	subtotal := cart.Subtotal(items)
	cost := zone.Cost()
	return Quote{
		Subtotal:     subtotal,
		DeliveryZone: zone,
		DeliveryCost: cost,
		Total:        subtotal.Add(cost),
	}
}

// Submit runs the full checkout for sess. On success the order is stored and the cart
// emptied; on any failure no order exists and the cart is left as it was.
func (s *Sequencer) Submit(ctx context.Context, sess *session.Session, req Request) (order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "checkout"),
		zap.String("method", "Submit"),
		zap.String("session_id", sess.ID),
	)

	req = req.withDefaults()
	if err := validation.Struct(req); err != nil {
		s.opts.Metrics.IncCheckout(metrics.OutcomeRejected)
		return order.Order{}, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	items, err := sess.BeginCheckout()
	if err != nil {
		s.opts.Metrics.IncCheckout(metrics.OutcomeRejected)
		return order.Order{}, err
	}
	placed := false
	defer func() { sess.EndCheckout(placed) }()

	for _, phase := range Phases {
		if err := s.runPhase(ctx, sess.ID, phase, items); err != nil {
			return order.Order{}, s.fail(ctx, sess.ID, phase, err)
		}
	}

	created, err := s.place(ctx, sess, req, items)
	if err != nil {
		return order.Order{}, s.fail(ctx, sess.ID, PhaseCompleted, err)
	}

	placed = true

	s.enter(sess.ID, PhaseCompleted)
	s.enter(sess.ID, PhaseIdle)
	s.opts.Metrics.IncCheckout(metrics.OutcomeSuccess)

	log.Info("checkout completed",
		zap.String("order_id", created.ID),
		zap.String("total", created.Total.StringFixed(2)),
	)
	return created, nil
}

func (s *Sequencer) runPhase(ctx context.Context, sessionID string, phase Phase, items []cart.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.enter(sessionID, phase)
	timer := metrics.StartTimerAt(s.opts.Now)
	defer func() { s.opts.Metrics.ObservePhase(string(phase), timer.Duration()) }()

	if d := s.delay(phase); d > 0 {
		t := time.NewTimer(d)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}

	if s.opts.FailureHook != nil {
		if err := s.opts.FailureHook(ctx, phase); err != nil {
			return err
		}
	}

	if phase == PhaseStockAllocation && s.opts.EnforceStock {
		return s.checkStock(ctx, items)
	}
	return nil
}

func (s *Sequencer) checkStock(ctx context.Context, items []cart.Item) error {
	for _, item := range items {
		p, err := s.catalog.Get(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("lookup %s: %w", item.ID, err)
		}
		if item.Quantity > p.Stock {
			return fmt.Errorf("%w: %s has %d, %d requested", ErrInsufficientStock, p.Name, p.Stock, item.Quantity)
		}
	}
	return nil
}

func (s *Sequencer) place(ctx context.Context, sess *session.Session, req Request, items []cart.Item) (order.Order, error) {
	userID := order.GuestUserID
	if u, ok := sess.User(); ok {
		userID = u.ID
	}

	quote := PriceItems(items, req.DeliveryZone)
	o := order.Order{
		UserID:          userID,
		CustomerName:    req.Name,
		PhoneNumber:     req.Phone,
		ShippingAddress: req.Address,
		DeliveryZone:    req.DeliveryZone,
		DeliveryCost:    quote.DeliveryCost,
		Items:           items,
		Total:           quote.Total,
		Status:          order.StatusPending,
		PaymentMethod:   req.PaymentMethod,
		Courier:         req.Courier,
		CreatedAt:       s.opts.Now().UTC(),
	}

	for attempt := 0; attempt < orderIDAttempts; attempt++ {
		id, err := s.opts.NewOrderID()
		if err != nil {
			return order.Order{}, err
		}
		o.ID = id
		created, err := s.orders.Create(ctx, o)
		if errors.Is(err, order.ErrOrderExists) {
			continue
		}
		return created, err
	}
	return order.Order{}, ErrOrderIDExhausted
}

func (s *Sequencer) fail(ctx context.Context, sessionID string, phase Phase, cause error) error {
	outcome := metrics.OutcomeFailure
	if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		outcome = metrics.OutcomeCanceled
	}
	logger.FromCtx(ctx).Warn("checkout failed",
		zap.String("layer", "checkout"),
		zap.String("session_id", sessionID),
		zap.String("phase", string(phase)),
		zap.Error(cause),
	)

	s.enter(sessionID, PhaseFailed)
	s.enter(sessionID, PhaseIdle)
	s.opts.Metrics.IncCheckout(outcome)
	return fmt.Errorf("%w: %s: %w", ErrPhaseFailed, phase, cause)
}
