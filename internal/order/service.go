package order

import (
	"context"
	"fmt"

	"storefront-be/internal/courier"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"

	"go.uber.org/zap"
)

// Publisher is notified after an order change has been stored.
type Publisher interface {
	OrderCreated(ctx context.Context, o Order)
	OrderStatusChanged(ctx context.Context, o Order, previous Status)
	CourierSynced(ctx context.Context, o Order)
}

type Service interface {
	Create(ctx context.Context, o Order) (Order, error)
	Get(ctx context.Context, id string) (Order, error)
	List(ctx context.Context, status *Status) ([]Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Order, error)
	SyncCourier(ctx context.Context, id string) (Order, error)
}

type service struct {
	repo      Repository
	syncer    courier.Syncer
	publisher Publisher
	metrics   *metrics.Storefront
}

func NewService(repo Repository, syncer courier.Syncer, publisher Publisher, m *metrics.Storefront) Service {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &service{repo: repo, syncer: syncer, publisher: publisher, metrics: m}
}

func (s *service) Create(ctx context.Context, o Order) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("order_id", o.ID),
	)

	if err := validate(o); err != nil {
		log.Warn("rejected order", zap.Error(err))
		return Order{}, err
	}
	if o.UserID == "" {
		o.UserID = GuestUserID
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return Order{}, err
	}

	log.Info("order created",
		zap.String("user_id", o.UserID),
		zap.String("total", o.Total.StringFixed(2)),
	)
	s.publisher.OrderCreated(ctx, o.Clone())
	return o.Clone(), nil
}

func validate(o Order) error {
	switch {
	case o.ID == "":
		return fmt.Errorf("%w: id is required", ErrInvalidOrder)
	case len(o.Items) == 0:
		return fmt.Errorf("%w: no items", ErrInvalidOrder)
	case !o.Status.Valid():
		return fmt.Errorf("%w: %q", ErrInvalidStatus, o.Status)
	case !o.DeliveryZone.Valid():
		return fmt.Errorf("%w: unknown delivery zone %q", ErrInvalidOrder, o.DeliveryZone)
	}
	for _, item := range o.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: quantity below 1 for %s", ErrInvalidOrder, item.ID)
		}
	}
	return nil
}

func (s *service) Get(ctx context.Context, id string) (Order, error) {
	return s.repo.Get(ctx, id)
}

// List returns every order newest first, or only those in status when it is set.
func (s *service) List(ctx context.Context, status *Status) ([]Order, error) {
	if status != nil && !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *status)
	}
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return orders, nil
	}

	filtered := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == *status {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]Order, 0)
	for _, o := range orders {
		if o.UserID == userID {
			mine = append(mine, o)
		}
	}
	return mine, nil
}

func (s *service) CountByStatus(ctx context.Context) (map[Status]int, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[Status]int, len(Statuses))
	for _, st := range Statuses {
		counts[st] = 0
	}
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts, nil
}

// UpdateStatus overwrites the status. Any known status may follow any other.
func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", id),
	)

	if !status.Valid() {
		return Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var previous Status
	updated, err := s.repo.Mutate(ctx, id, func(o *Order) error {
		previous = o.Status
		o.Status = status
		return nil
	})
	if err != nil {
		log.Warn("failed to update status", zap.Error(err))
		return Order{}, err
	}

	log.Info("order status updated",
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)
	s.metrics.IncStatusChange(string(status))
	s.publisher.OrderStatusChanged(ctx, updated, previous)
	return updated, nil
}

// SyncCourier books the order with its courier. Success stores the tracking id and
// marks the order shipped; any failure leaves the order exactly as it was.
func (s *service) SyncCourier(ctx context.Context, id string) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SyncCourier"),
		zap.String("order_id", id),
	)

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if o.Courier == "" {
		return Order{}, fmt.Errorf("%w: %w", ErrCourierSyncFailed, ErrNoCourier)
	}

	res, err := s.syncer.Sync(ctx, o.ID, o.Courier)
	if err != nil {
		log.Warn("courier sync failed", zap.String("courier", string(o.Courier)), zap.Error(err))
		s.metrics.IncCourierSync(string(o.Courier), metrics.OutcomeFailure)
		return Order{}, fmt.Errorf("%w: %w", ErrCourierSyncFailed, err)
	}

	updated, err := s.repo.Mutate(ctx, id, func(o *Order) error {
		o.CourierTrackingID = res.TrackingID
		o.Status = StatusShipped
		return nil
	})
	if err != nil {
		log.Error("failed to store tracking id", zap.Error(err))
		return Order{}, err
	}

	log.Info("courier synced",
		zap.String("courier", string(updated.Courier)),
		zap.String("tracking_id", updated.CourierTrackingID),
	)
	s.metrics.IncCourierSync(string(updated.Courier), metrics.OutcomeSuccess)
	s.publisher.CourierSynced(ctx, updated)
	return updated, nil
}

type nopPublisher struct{}

func (nopPublisher) OrderCreated(context.Context, Order)               {}
func (nopPublisher) OrderStatusChanged(context.Context, Order, Status) {}
func (nopPublisher) CourierSynced(context.Context, Order)              {}
