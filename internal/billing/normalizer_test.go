package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test_secret"

func sign(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.", ts.Unix())))
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func eventPayload(id, eventType, object string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":%q,"object":"event","type":%q,"created":1700000000,"api_version":"2020-08-27","data":{"object":%s}}`,
		id, eventType, object))
}

func TestNormalize_Events(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		want    Event
	}{
		{
			name: "checkout completed",
			payload: eventPayload("evt_1", EventCheckoutSessionCompleted,
				`{"id":"cs_1","object":"checkout.session","customer":"cus_1","subscription":"sub_1","mode":"subscription"}`),
			want: CheckoutCompleted{
				Meta:           Meta{ID: "evt_1", Type: EventCheckoutSessionCompleted, Created: time.Unix(1700000000, 0).UTC()},
				CustomerID:     "cus_1",
				SubscriptionID: "sub_1",
			},
		},
		{
			name: "checkout without subscription is ignored",
			payload: eventPayload("evt_2", EventCheckoutSessionCompleted,
				`{"id":"cs_2","object":"checkout.session","customer":"cus_1","subscription":null,"mode":"payment"}`),
			want: Ignored{Meta: Meta{ID: "evt_2", Type: EventCheckoutSessionCompleted, Created: time.Unix(1700000000, 0).UTC()}},
		},
		{
			name: "subscription updated",
			payload: eventPayload("evt_3", EventSubscriptionUpdated,
				`{"id":"sub_1","object":"subscription","customer":"cus_1","status":"past_due"}`),
			want: SubscriptionUpdated{
				Meta:           Meta{ID: "evt_3", Type: EventSubscriptionUpdated, Created: time.Unix(1700000000, 0).UTC()},
				SubscriptionID: "sub_1",
				Status:         "past_due",
			},
		},
		{
			name: "subscription deleted",
			payload: eventPayload("evt_4", EventSubscriptionDeleted,
				`{"id":"sub_1","object":"subscription","customer":"cus_1","status":"canceled"}`),
			want: SubscriptionDeleted{
				Meta:           Meta{ID: "evt_4", Type: EventSubscriptionDeleted, Created: time.Unix(1700000000, 0).UTC()},
				SubscriptionID: "sub_1",
			},
		},
		{
			name:    "unknown type is ignored",
			payload: eventPayload("evt_5", "invoice.paid", `{"id":"in_1","object":"invoice"}`),
			want:    Ignored{Meta: Meta{ID: "evt_5", Type: "invoice.paid", Created: time.Unix(1700000000, 0).UTC()}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.payload, sign(tt.payload, testSecret, time.Now()), testSecret)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Errors(t *testing.T) {
	valid := eventPayload("evt_1", EventSubscriptionUpdated,
		`{"id":"sub_1","object":"subscription","status":"active"}`)

	tests := []struct {
		name    string
		payload []byte
		header  string
		wantErr error
	}{
		{
			name:    "missing header",
			payload: valid,
			header:  "",
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "unparsable header",
			payload: valid,
			header:  "garbage",
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "wrong secret",
			payload: valid,
			header:  sign(valid, "whsec_other", time.Now()),
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "timestamp too old",
			payload: valid,
			header:  sign(valid, testSecret, time.Now().Add(-time.Hour)),
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "body is not json",
			payload: []byte("not json"),
			wantErr: ErrMalformedPayload,
		},
		{
			name: "checkout without customer",
			payload: eventPayload("evt_6", EventCheckoutSessionCompleted,
				`{"id":"cs_1","object":"checkout.session","subscription":"sub_1"}`),
			wantErr: ErrMalformedPayload,
		},
		{
			name: "subscription without status",
			payload: eventPayload("evt_7", EventSubscriptionUpdated,
				`{"id":"sub_1","object":"subscription"}`),
			wantErr: ErrMalformedPayload,
		},
		{
			name: "subscription id has wrong type",
			payload: eventPayload("evt_8", EventSubscriptionDeleted,
				`{"id":42,"object":"subscription"}`),
			wantErr: ErrMalformedPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := tt.header
			if header == "" && tt.wantErr == ErrMalformedPayload {
				header = sign(tt.payload, testSecret, time.Now())
			}
			got, err := Normalize(tt.payload, header, testSecret)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrVerification)
		})
	}
}

func TestNormalizer_UsesEndpointSecret(t *testing.T) {
	n := NewNormalizer(testSecret)
	payload := eventPayload("evt_9", EventSubscriptionDeleted, `{"id":"sub_9","object":"subscription"}`)

	got, err := n.Normalize(payload, sign(payload, testSecret, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, KindSubscriptionDeleted, KindOf(got))
	assert.Equal(t, "evt_9", got.EventMeta().ID)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindCheckoutCompleted, KindOf(CheckoutCompleted{}))
	assert.Equal(t, KindSubscriptionUpdated, KindOf(SubscriptionUpdated{}))
	assert.Equal(t, KindSubscriptionDeleted, KindOf(SubscriptionDeleted{}))
	assert.Equal(t, KindIgnored, KindOf(Ignored{}))
}
