package http_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pancakehouse/api"
	httpin "pancakehouse/internal/adapters/in/http"
	"pancakehouse/internal/adapters/out/memory/orderrepo"
	"pancakehouse/internal/adapters/out/memory/ownershiprepo"
	"pancakehouse/internal/adapters/out/memory/userrepo"
	"pancakehouse/internal/adapters/out/notify"
	"pancakehouse/internal/core/application/pipeline"
	"pancakehouse/internal/core/application/usecases/access"
	"pancakehouse/internal/core/application/usecases/delivery"
	"pancakehouse/internal/core/application/usecases/kitchen"
	"pancakehouse/internal/core/application/usecases/ordering"
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/menu"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type ServerTestSuite struct {
	suite.Suite
	echo   *echo.Echo
	intake *pipeline.Queue[kernel.UUID]
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (suite *ServerTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	directory, err := userrepo.NewUserDirectory(userrepo.DefaultUsers("kitchen-crew", "delivery-crew")...)
	suite.Require().NoError(err)
	ownership := ownershiprepo.NewOwnershipMap()
	authenticator := access.NewAuthenticator(directory)
	authorizer := access.NewAuthorizer(ownership)
	orders := orderrepo.NewOrderStore()
	statuses := orderrepo.NewStatusStore()
	signals := delivery.NewSignals()
	suite.intake = pipeline.NewQueue[kernel.UUID](0)

	workflow := ordering.NewAuthenticatedWorkflow(authenticator, ordering.NewAuthorizedWorkflow(authorizer,
		ordering.NewService(orders, statuses, ownership, menu.NewCatalog(), suite.intake, logger)))
	kitchenDesk := kitchen.NewGatedDesk(authenticator, authorizer,
		kitchen.NewService(orders, statuses, pipeline.NewQueue[kernel.UUID](0), logger))
	protocol, err := delivery.NewProtocol(delivery.ProtocolConfig{Name: delivery.ProtocolHandshake, Timeout: time.Second},
		statuses, notify.NewLogNotifier(logger), signals, logger)
	suite.Require().NoError(err)
	deliveryDesk := delivery.NewGatedDesk(authenticator, authorizer,
		delivery.NewService(orders, statuses, protocol, signals, logger))

	doc, err := api.Load()
	suite.Require().NoError(err)
	suite.echo, err = httpin.NewRouter(httpin.NewServer(authenticator, workflow, kitchenDesk, deliveryDesk, logger), doc)
	suite.Require().NoError(err)
}

func (suite *ServerTestSuite) do(method, path, user, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if user != "" {
		req.Header.Set(httpin.UserHeader, user)
	}
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *ServerTestSuite) createOrder(user string) string {
	rec := suite.do(http.MethodPost, "/api/v1/orders", user, `{"room":101,"building":7}`)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var ref httpin.OrderRef
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &ref))
	return ref.ID
}

func (suite *ServerTestSuite) errorCode(rec *httptest.ResponseRecorder) int {
	var body httpin.Error
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	suite.Equal(rec.Code, body.Code)
	return body.Code
}

func (suite *ServerTestSuite) TestOrderLifecycle() {
	id := suite.createOrder("alice")

	rec := suite.do(http.MethodPost, "/api/v1/orders/"+id+"/pancakes", "alice",
		`{"items":{"dark_chocolate":2,"milk_chocolate":1}}`)
	suite.Equal(http.StatusNoContent, rec.Code, rec.Body.String())
	rec = suite.do(http.MethodPost, "/api/v1/orders/"+id+"/pancakes", "alice", `{"items":{"dark_chocolate":1}}`)
	suite.Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodGet, "/api/v1/orders/"+id, "alice", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var summary httpin.OrderSummary
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &summary))
	suite.Equal(httpin.Items{"dark_chocolate": 3, "milk_chocolate": 1}, summary.Items)

	rec = suite.do(http.MethodGet, "/api/v1/orders/"+id+"/status", "alice", "")
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`{"id":"`+id+`","status":"Pending"}`, rec.Body.String())

	rec = suite.do(http.MethodPost, "/api/v1/orders/"+id+"/complete", "alice", "")
	suite.Equal(http.StatusAccepted, rec.Code, rec.Body.String())
	suite.Equal(1, suite.intake.Len())

	rec = suite.do(http.MethodGet, "/api/v1/kitchen/orders", "kitchen-crew", "")
	suite.Require().Equal(http.StatusOK, rec.Code)
	var tickets []httpin.Ticket
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &tickets))
	suite.Require().Len(tickets, 1)
	suite.Equal(id, tickets[0].ID)
	suite.Equal("Completed", tickets[0].Status)

	rec = suite.do(http.MethodPost, "/api/v1/orders/"+id+"/cancel", "alice", "")
	suite.Equal(http.StatusNotFound, suite.errorCode(rec))
}

func (suite *ServerTestSuite) TestAddPancakesStopsAtMaximum() {
	id := suite.createOrder("alice")
	path := "/api/v1/orders/" + id + "/pancakes"

	rec := suite.do(http.MethodPost, path, "alice", `{"items":{"dark_chocolate":100}}`)
	suite.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodPost, path, "alice", `{"items":{"dark_chocolate":1}}`)
	suite.Equal(http.StatusBadRequest, suite.errorCode(rec))

	rec = suite.do(http.MethodGet, "/api/v1/orders/"+id, "alice", "")
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`{"id":"`+id+`","items":{"dark_chocolate":100}}`, rec.Body.String())
}

func (suite *ServerTestSuite) TestCancel() {
	id := suite.createOrder("bob")

	rec := suite.do(http.MethodPost, "/api/v1/orders/"+id+"/cancel", "bob", "")
	suite.Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodGet, "/api/v1/orders/"+id+"/status", "bob", "")
	suite.Equal(http.StatusNotFound, suite.errorCode(rec))
}

func (suite *ServerTestSuite) TestErrorMapping() {
	id := suite.createOrder("alice")

	tests := []struct {
		name   string
		method string
		path   string
		user   string
		body   string
		want   int
	}{
		{"should reject a missing caller", http.MethodPost, "/api/v1/orders", "", `{"room":1,"building":1}`,
			http.StatusUnauthorized},
		{"should reject an unknown caller", http.MethodGet, "/api/v1/orders/" + id, "mallory", "",
			http.StatusUnauthorized},
		{"should forbid a foreign order", http.MethodGet, "/api/v1/orders/" + id, "bob", "",
			http.StatusForbidden},
		{"should report an unknown order", http.MethodGet, "/api/v1/orders/" + kernel.NewUUID().String(), "alice", "",
			http.StatusNotFound},
		{"should authenticate an unknown caller before checking the body", http.MethodPost, "/api/v1/orders",
			"mallory", `{"room":0,"building":7}`, http.StatusUnauthorized},
		{"should authenticate a missing caller before checking the body", http.MethodPost, "/api/v1/orders",
			"", `{"room":5000,"building":7}`, http.StatusUnauthorized},
		{"should authenticate before checking the order id", http.MethodGet, "/api/v1/orders/not-a-uuid",
			"mallory", "", http.StatusUnauthorized},
		{"should reject a quantity above the maximum", http.MethodPost, "/api/v1/orders/" + id + "/pancakes", "alice",
			`{"items":{"dark_chocolate":1099511627776}}`, http.StatusBadRequest},
		{"should reject an out of range room", http.MethodPost, "/api/v1/orders", "alice", `{"room":0,"building":1}`,
			http.StatusBadRequest},
		{"should reject a malformed order id", http.MethodGet, "/api/v1/orders/not-a-uuid", "alice", "",
			http.StatusBadRequest},
		{"should reject an unknown pancake", http.MethodPost, "/api/v1/orders/" + id + "/pancakes", "alice",
			`{"items":{"blueberry":1}}`, http.StatusBadRequest},
		{"should reject a zero quantity", http.MethodPost, "/api/v1/orders/" + id + "/pancakes", "alice",
			`{"items":{"dark_chocolate":0}}`, http.StatusBadRequest},
		{"should refuse to complete an empty order", http.MethodPost, "/api/v1/orders/" + id + "/complete", "alice", "",
			http.StatusBadRequest},
		{"should keep customers out of the kitchen", http.MethodGet, "/api/v1/kitchen/orders", "alice", "",
			http.StatusForbidden},
		{"should keep the kitchen out of orders", http.MethodGet, "/api/v1/orders/" + id, "kitchen-crew", "",
			http.StatusForbidden},
		{"should refuse to confirm an order not awaiting the partner", http.MethodPost,
			"/api/v1/delivery/orders/" + id + "/delivered", "delivery-crew", "", http.StatusConflict},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			rec := suite.do(tt.method, tt.path, tt.user, tt.body)

			suite.Equal(tt.want, suite.errorCode(rec), rec.Body.String())
		})
	}
}

func (suite *ServerTestSuite) TestDeliveryViews() {
	rec := suite.do(http.MethodGet, "/api/v1/delivery/orders", "delivery-crew", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`[]`, rec.Body.String())

	rec = suite.do(http.MethodGet, "/api/v1/delivery/assignments", "delivery-crew", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`[]`, rec.Body.String())
}

func (suite *ServerTestSuite) TestServiceEndpoints() {
	rec := suite.do(http.MethodGet, "/health", "", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("Healthy", rec.Body.String())

	rec = suite.do(http.MethodGet, "/openapi.json", "", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), `"/api/v1/orders/{orderId}/complete"`)
}
