package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/core/application/fulfillment"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/generated/servers"
	"storefront/internal/pkg/errs"
)

const testSecret = "test-secret"

func sign(orderRef, paymentRef string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderRef + "|" + paymentRef))
	return hex.EncodeToString(mac.Sum(nil))
}

// memOrderRepository is an in-memory OrderRepository good enough to drive the
// confirmation pipeline end to end over HTTP.
type memOrderRepository struct {
	orders map[string]*order.Order
}

func newMemOrderRepository() *memOrderRepository {
	return &memOrderRepository{orders: make(map[string]*order.Order)}
}

func (r *memOrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	r.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (r *memOrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	r.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (r *memOrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := r.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

func (r *memOrderRepository) GetByGatewayRef(_ context.Context, ref string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.GatewayOrderRef() == ref {
			return o, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("gatewayOrderRef", ref)
}

func (r *memOrderRepository) UpdateStatusIf(ctx context.Context, id kernel.UUID, from []order.Status, to order.Status) error {
	o, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	for _, status := range from {
		if o.Status() == status {
			return r.replaceStatus(o, to, o.Shipment())
		}
	}
	return ports.ErrStatusConflict
}

func (r *memOrderRepository) AttachShipment(ctx context.Context, id kernel.UUID, shipment order.ShipmentInfo) error {
	o, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if o.HasShipment() {
		return ports.ErrShipmentExists
	}
	return r.replaceStatus(o, order.Shipped, &shipment)
}

func (r *memOrderRepository) GetPaidWithoutShipment(_ context.Context, limit int) ([]*order.Order, error) {
	var result []*order.Order
	for _, o := range r.orders {
		if o.Status() == order.Paid && !o.HasShipment() {
			result = append(result, o)
		}
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (r *memOrderRepository) replaceStatus(o *order.Order, to order.Status, shipment *order.ShipmentInfo) error {
	updated, err := order.RestoreOrder(
		o.ID(), o.GatewayOrderRef(), o.Amounts(), o.Address(), o.Items(),
		to, shipment, o.CreatedAt(), time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	r.orders[o.ID().String()] = updated
	return nil
}

type memUoW struct {
	repo *memOrderRepository
}

func (u *memUoW) Begin(context.Context) error            { return nil }
func (u *memUoW) Commit(context.Context) error           { return nil }
func (u *memUoW) Rollback(context.Context) error         { return nil }
func (u *memUoW) OrderRepository() ports.OrderRepository { return u.repo }

type memUoWFactory struct {
	repo *memOrderRepository
}

func (f *memUoWFactory) Create() commands.OrderUoW { return &memUoW{repo: f.repo} }

type fakeProvisioner struct {
	info order.ShipmentInfo
	err  error
}

func (p *fakeProvisioner) Provision(context.Context, *order.Order) (order.ShipmentInfo, error) {
	return p.info, p.err
}

type fakeNotifier struct {
	kinds []ports.NotificationKind
}

func (n *fakeNotifier) Dispatch(_ context.Context, kind ports.NotificationKind, _ *order.Order) []fulfillment.DispatchResult {
	n.kinds = append(n.kinds, kind)
	return nil
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()

	amounts, err := order.NewAmounts(500, 50)
	require.NoError(t, err)
	address, err := order.NewAddress("Jane Doe", "jane@example.com", "+15550100", "1 Main St", "Springfield", "IL", "62701")
	require.NoError(t, err)
	item, err := order.NewItem("sku-1", "Widget", 250, 2)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "gw_1", amounts, address, []order.Item{item})
	require.NoError(t, err)
	return o
}

type serverFixture struct {
	server *Server
	repo   *memOrderRepository
}

func newServerFixture(t *testing.T, provisioner *fakeProvisioner) serverFixture {
	t.Helper()

	repo := newMemOrderRepository()
	factory := &memUoWFactory{repo: repo}
	verifier := services.NewSignatureVerifier(testSecret)

	confirmHandler := commands.NewConfirmPaymentCommandHandler(
		factory, verifier, provisioner, &fakeNotifier{}, nil, nil)
	shipmentHandler := commands.NewCreateShipmentCommandHandler(
		factory, provisioner, &fakeNotifier{}, nil, nil)

	return serverFixture{
		server: NewServer(confirmHandler, shipmentHandler, queries.GetTrackingQueryHandler{}),
		repo:   repo,
	}
}

func doConfirm(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/confirm", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, server.ConfirmPayment(e.NewContext(req, rec)))
	return rec
}

func confirmBody(t *testing.T, orderRef, paymentRef, signature string) string {
	t.Helper()

	raw, err := json.Marshal(servers.PaymentNotification{
		GatewayOrderRef:   orderRef,
		GatewayPaymentRef: paymentRef,
		Signature:         signature,
	})
	require.NoError(t, err)
	return string(raw)
}

func TestConfirmPaymentEndpoint(t *testing.T) {
	t.Run("confirms payment and returns tracking", func(t *testing.T) {
		info, err := order.NewShipmentInfo("AWB123", "https://track.example.com/AWB123", "LogiShip")
		require.NoError(t, err)
		fixture := newServerFixture(t, &fakeProvisioner{info: info})
		require.NoError(t, fixture.repo.Add(context.Background(), pendingOrder(t)))

		rec := doConfirm(t, fixture.server, confirmBody(t, "gw_1", "pay_1", sign("gw_1", "pay_1")))

		require.Equal(t, http.StatusOK, rec.Code)

		var response servers.PaymentConfirmation
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "shipped", response.Status)
		assert.False(t, response.ShipmentDeferred)
		require.NotNil(t, response.TrackingId)
		assert.Equal(t, "AWB123", *response.TrackingId)
	})

	t.Run("reports deferred shipment on carrier failure", func(t *testing.T) {
		fixture := newServerFixture(t, &fakeProvisioner{err: fulfillment.ErrShipmentProvisioning})
		require.NoError(t, fixture.repo.Add(context.Background(), pendingOrder(t)))

		rec := doConfirm(t, fixture.server, confirmBody(t, "gw_1", "pay_1", sign("gw_1", "pay_1")))

		require.Equal(t, http.StatusOK, rec.Code)

		var response servers.PaymentConfirmation
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "paid", response.Status)
		assert.True(t, response.ShipmentDeferred)
		assert.Nil(t, response.TrackingId)
		require.NotNil(t, response.ShipmentError)
	})

	t.Run("rejects forged signature", func(t *testing.T) {
		fixture := newServerFixture(t, &fakeProvisioner{})
		require.NoError(t, fixture.repo.Add(context.Background(), pendingOrder(t)))

		rec := doConfirm(t, fixture.server, confirmBody(t, "gw_1", "pay_1", "forged"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown order returns not found", func(t *testing.T) {
		fixture := newServerFixture(t, &fakeProvisioner{})

		rec := doConfirm(t, fixture.server, confirmBody(t, "gw_missing", "pay_1", sign("gw_missing", "pay_1")))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("cancelled order conflicts", func(t *testing.T) {
		fixture := newServerFixture(t, &fakeProvisioner{})
		o := pendingOrder(t)
		require.NoError(t, fixture.repo.Add(context.Background(), o))
		require.NoError(t, fixture.repo.replaceStatus(o, order.Cancelled, nil))

		rec := doConfirm(t, fixture.server, confirmBody(t, "gw_1", "pay_1", sign("gw_1", "pay_1")))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing fields are a bad request", func(t *testing.T) {
		fixture := newServerFixture(t, &fakeProvisioner{})

		rec := doConfirm(t, fixture.server, confirmBody(t, "gw_1", "", sign("gw_1", "")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateOrderShipmentEndpoint(t *testing.T) {
	t.Run("provisions shipment for paid order", func(t *testing.T) {
		info, err := order.NewShipmentInfo("AWB999", "https://track.example.com/AWB999", "LogiShip")
		require.NoError(t, err)
		fixture := newServerFixture(t, &fakeProvisioner{info: info})
		o := pendingOrder(t)
		require.NoError(t, fixture.repo.Add(context.Background(), o))
		require.NoError(t, fixture.repo.replaceStatus(o, order.Paid, nil))

		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, fixture.server.CreateOrderShipment(e.NewContext(req, rec), o.ID().Bytes()))

		require.Equal(t, http.StatusOK, rec.Code)

		var response servers.Shipment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "AWB999", response.TrackingId)
	})

	t.Run("pending order conflicts", func(t *testing.T) {
		fixture := newServerFixture(t, &fakeProvisioner{})
		o := pendingOrder(t)
		require.NoError(t, fixture.repo.Add(context.Background(), o))

		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, fixture.server.CreateOrderShipment(e.NewContext(req, rec), o.ID().Bytes()))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown order returns not found", func(t *testing.T) {
		fixture := newServerFixture(t, &fakeProvisioner{})

		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, fixture.server.CreateOrderShipment(e.NewContext(req, rec), kernel.NewUUID().Bytes()))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
