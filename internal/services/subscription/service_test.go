package subscription

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Edu92337/quizmaster-backend/internal/billing"
	"github.com/Edu92337/quizmaster-backend/internal/lib/rabbitmq"
	"github.com/Edu92337/quizmaster-backend/internal/metrics"
	"github.com/Edu92337/quizmaster-backend/internal/models"
)

type NormalizerMock struct{ mock.Mock }

func (m *NormalizerMock) Normalize(payload []byte, signatureHeader string) (billing.Event, error) {
	args := m.Called(payload, signatureHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(billing.Event), args.Error(1)
}

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

func newTestService(n Normalizer, repo Repository, notifier Notifier) (*Service, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	log := newNoopLogger()
	return NewService(n, NewReconciler(repo, log), notifier, metrics.New(reg), log), reg
}

func TestHandleWebhook_InvalidSignatureTouchesNothing(t *testing.T) {
	repo := new(RepoMock)
	notifier := new(NotifierMock)
	svc, _ := newTestService(billing.NewNormalizer("whsec_test"), repo, notifier)

	_, err := svc.HandleWebhook(context.Background(), []byte(`{"id":"evt_1","type":"checkout.session.completed"}`), "t=1,v1=deadbeef")
	require.Error(t, err)
	assert.True(t, errors.Is(err, billing.ErrVerification))

	repo.AssertNotCalled(t, "GetUserByCustomerID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "RecordWebhookEvent", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestHandleWebhook_PublishesOnEntitlementChange(t *testing.T) {
	event := billing.SubscriptionDeleted{
		Meta:           billing.Meta{ID: "evt_9", Type: billing.EventSubscriptionDeleted},
		SubscriptionID: "sub_1",
	}
	normalizer := new(NormalizerMock)
	normalizer.On("Normalize", []byte("payload"), "sig").Return(event, nil).Once()

	repo := new(RepoMock)
	repo.On("GetSubscriptionByBillingID", mock.Anything, "sub_1").
		Return(&models.Subscription{UserUID: "u-1", BillingSubscriptionID: "sub_1"}, nil).Once()
	repo.On("GetUser", mock.Anything, "u-1").
		Return(&models.User{UUID: "u-1", Email: "ana@example.com", IsSubscribed: true}, nil).Once()
	repo.On("DeleteSubscriptionByBillingID", mock.Anything, "sub_1").Return(1, nil).Once()
	repo.On("SetSubscribed", mock.Anything, "u-1", false).Return(nil).Once()
	repo.On("RecordWebhookEvent", mock.Anything, mock.Anything).Return(true, nil).Once()

	notifier := new(NotifierMock)
	notifier.On("Publish", rabbitmq.EntitlementRoutingKey, models.EntitlementChanged{
		UserUID:  "u-1",
		Email:    "ana@example.com",
		Entitled: false,
		Status:   "deleted",
	}).Return(nil).Once()

	svc, reg := newTestService(normalizer, repo, notifier)
	eff, err := svc.HandleWebhook(context.Background(), []byte("payload"), "sig")
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, eff.Outcome)

	notifier.AssertExpectations(t)
	repo.AssertExpectations(t)

	count, err := testutil.GatherAndCount(reg, "quizmaster_webhook_events_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandleWebhook_NoPublishWithoutChange(t *testing.T) {
	event := billing.Ignored{Meta: billing.Meta{ID: "evt_10", Type: "invoice.paid"}}
	normalizer := new(NormalizerMock)
	normalizer.On("Normalize", mock.Anything, mock.Anything).Return(event, nil).Once()

	repo := new(RepoMock)
	repo.On("RecordWebhookEvent", mock.Anything, mock.Anything).Return(true, nil).Once()
	notifier := new(NotifierMock)

	svc, _ := newTestService(normalizer, repo, notifier)
	eff, err := svc.HandleWebhook(context.Background(), []byte("payload"), "sig")
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, eff.Outcome)
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestHandleWebhook_PublishFailureDoesNotFailEvent(t *testing.T) {
	event := billing.CheckoutCompleted{
		Meta:           billing.Meta{ID: "evt_11", Type: billing.EventCheckoutSessionCompleted},
		CustomerID:     "cus_1",
		SubscriptionID: "sub_1",
	}
	normalizer := new(NormalizerMock)
	normalizer.On("Normalize", mock.Anything, mock.Anything).Return(event, nil).Once()

	repo := new(RepoMock)
	repo.On("GetUserByCustomerID", mock.Anything, "cus_1").Return(&models.User{UUID: "u-1"}, nil).Once()
	repo.On("UpsertSubscriptionByCustomer", mock.Anything, "u-1", "cus_1", "sub_1").Return(nil).Once()
	repo.On("SetSubscribed", mock.Anything, "u-1", true).Return(nil).Once()
	repo.On("RecordWebhookEvent", mock.Anything, mock.Anything).Return(true, nil).Once()

	notifier := new(NotifierMock)
	notifier.On("Publish", mock.Anything, mock.Anything).Return(errors.New("channel closed")).Once()

	svc, _ := newTestService(normalizer, repo, notifier)
	eff, err := svc.HandleWebhook(context.Background(), []byte("payload"), "sig")
	require.NoError(t, err)
	assert.True(t, eff.Changed)
	notifier.AssertExpectations(t)
}

func TestHandleWebhook_ReconcileFailure(t *testing.T) {
	event := billing.Ignored{Meta: billing.Meta{ID: "evt_12", Type: "invoice.paid"}}
	normalizer := new(NormalizerMock)
	normalizer.On("Normalize", mock.Anything, mock.Anything).Return(event, nil).Once()

	repo := new(RepoMock)
	repo.On("RecordWebhookEvent", mock.Anything, mock.Anything).Return(false, errors.New("db down")).Once()

	svc, _ := newTestService(normalizer, repo, nil)
	_, err := svc.HandleWebhook(context.Background(), []byte("payload"), "sig")
	require.Error(t, err)
	assert.False(t, errors.Is(err, billing.ErrVerification))
}
