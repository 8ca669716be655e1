package reconcile

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-admin/internal/domain"
)

type MetadataTestSuite struct {
	suite.Suite
}

func TestMetadataSuite(t *testing.T) {
	suite.Run(t, new(MetadataTestSuite))
}

func (s *MetadataTestSuite) TestParseMetadata() {
	cases := []struct {
		name       string
		raw        []byte
		wantKind   MetadataKind
		wantFields MetadataFields
	}{
		{name: "nil", raw: nil, wantKind: MetadataEmpty},
		{name: "blank", raw: []byte("   "), wantKind: MetadataEmpty},
		{name: "json null", raw: []byte("null"), wantKind: MetadataEmpty},
		{
			name:     "object",
			raw:      []byte(`{"external_payment_id":"XYZ","external_transaction_id":"TX-1","user_info":{"email":"a@b.c"}}`),
			wantKind: MetadataParsed,
			wantFields: MetadataFields{
				ExternalPaymentID:     "XYZ",
				ExternalTransactionID: "TX-1",
				UserEmail:             "a@b.c",
			},
		}, {
			name:       "string encoded object",
			raw:        []byte(`"{\"external_payment_id\":\"XYZ\"}"`),
			wantKind:   MetadataParsed,
			wantFields: MetadataFields{ExternalPaymentID: "XYZ"},
		}, {
			name:       "numeric ids",
			raw:        []byte(`{"external_payment_id":123456,"external_transaction_id":7.5}`),
			wantKind:   MetadataParsed,
			wantFields: MetadataFields{ExternalPaymentID: "123456", ExternalTransactionID: "7.5"},
		}, {
			name:       "user_info is not an object",
			raw:        []byte(`{"external_payment_id":"XYZ","user_info":"oops"}`),
			wantKind:   MetadataParsed,
			wantFields: MetadataFields{ExternalPaymentID: "XYZ"},
		}, {
			name:       "non scalar ids ignored",
			raw:        []byte(`{"external_payment_id":{"nested":1},"external_transaction_id":["a"]}`),
			wantKind:   MetadataParsed,
			wantFields: MetadataFields{},
		}, {
			name:       "blank values trimmed",
			raw:        []byte(`{"external_payment_id":"  ","user_info":{"email":" x@y.z "}}`),
			wantKind:   MetadataParsed,
			wantFields: MetadataFields{UserEmail: "x@y.z"},
		},
		{name: "string encoded empty", raw: []byte(`""`), wantKind: MetadataEmpty},
		{name: "garbage", raw: []byte("not json at all"), wantKind: MetadataUnparseable},
		{name: "broken object", raw: []byte(`{"external_payment_id":`), wantKind: MetadataUnparseable},
		{name: "array", raw: []byte(`[1,2,3]`), wantKind: MetadataUnparseable},
		{name: "string encoded garbage", raw: []byte(`"not json"`), wantKind: MetadataUnparseable},
		{name: "double encoded", raw: []byte(`"\"{}\""`), wantKind: MetadataUnparseable},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			md := ParseMetadata(t.raw)
			s.Equal(t.wantKind, md.Kind, md.Kind.String())
			s.Equal(t.wantFields, md.Fields)
			if t.wantKind == MetadataUnparseable {
				s.Error(md.Err)
			} else {
				s.NoError(md.Err)
			}
		})
	}
}

func (s *MetadataTestSuite) TestExtractCandidates() {
	order := domain.Order{
		ID: uuid.New(),
		Metadata: []byte(`{"external_payment_id":"XYZ","external_transaction_id":"XYZ",
			"user_info":{"email":"a@b.c"}}`),
	}
	// одинаковые значения схлопываются.
	s.Equal([]string{"XYZ", "a@b.c"}, ExtractCandidates(order))

	// заказ без метаданных - не ошибка.
	s.Empty(ExtractCandidates(domain.Order{ID: uuid.New()}))
}

func (s *MetadataTestSuite) TestPoolCandidates_MalformedIsIsolated() {
	broken := domain.Order{ID: uuid.New(), Metadata: []byte("{broken")}
	orders := []domain.Order{
		{ID: uuid.New(), Metadata: []byte(`{"external_payment_id":"P-1"}`)},
		broken,
		{ID: uuid.New(), Metadata: []byte(`"{\"external_transaction_id\":\"T-2\"}"`)},
		{ID: uuid.New()},
		{ID: uuid.New(), Metadata: []byte(`{"external_payment_id":"P-1"}`)},
	}

	var failed []uuid.UUID
	set := PoolCandidates(orders, func(order domain.Order, err error) {
		s.Error(err)
		failed = append(failed, order.ID)
	})

	s.Equal([]uuid.UUID{broken.ID}, failed)
	s.Equal([]string{"P-1", "T-2"}, set.Values())
	s.Equal(2, set.Len())
}

func (s *MetadataTestSuite) TestPoolCandidates_NilCallback() {
	set := PoolCandidates([]domain.Order{{Metadata: []byte("nope")}}, nil)
	s.Equal(0, set.Len())
	s.Empty(set.Values())
}
