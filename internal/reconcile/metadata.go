// Package reconcile связывает заказы и платежные транзакции из двух независимых хранилищ
// и сводит их в метрики юзера. Пакет не ходит в базы данных: все функции чистые.
package reconcile

import (
	"bytes"
	"errors"
	"strings"

	"github.com/goccy/go-json"
)

const (
	keyExternalPaymentID     = "external_payment_id"
	keyExternalTransactionID = "external_transaction_id"
	keyUserInfo              = "user_info"
	keyEmail                 = "email"
)

var ErrMetadataNotObject = errors.New("metadata is not a json object")

type MetadataKind uint8

const (
	// MetadataEmpty метаданных нет: пустое значение или null.
	MetadataEmpty MetadataKind = iota
	// MetadataParsed документ разобран, Fields заполнены тем, что нашлось.
	MetadataParsed
	// MetadataUnparseable документ есть, но разобрать его не удалось. Причина в Err.
	MetadataUnparseable
)

func (k MetadataKind) String() string {
	switch k {
	case MetadataEmpty:
		return "empty"
	case MetadataParsed:
		return "parsed"
	case MetadataUnparseable:
		return "unparseable"
	default:
		return "invalid"
	}
}

type MetadataFields struct {
	ExternalPaymentID     string
	ExternalTransactionID string
	UserEmail             string
}

// Metadata результат разбора метаданных заказа. Поле Kind определяет, какие из остальных полей имеют смысл.
type Metadata struct {
	Kind   MetadataKind
	Fields MetadataFields
	Err    error
}

// ParseMetadata разбирает метаданные заказа. Поддерживает json объект и json строку, внутри которой
// закодирован объект (один уровень вложенности). Никогда не паникует и не возвращает ошибку: проблемы
// разбора выражаются через MetadataUnparseable.
func ParseMetadata(raw []byte) Metadata {
	return parseMetadata(raw, true)
}

func parseMetadata(raw []byte, allowEncoded bool) Metadata {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Metadata{Kind: MetadataEmpty}
	}

	switch trimmed[0] {
	case '{':
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return unparseable(err)
		}
		return Metadata{Kind: MetadataParsed, Fields: fieldsFromDocument(doc)}
	case '"':
		if !allowEncoded {
			return unparseable(ErrMetadataNotObject)
		}
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return unparseable(err)
		}
		return parseMetadata([]byte(encoded), false)
	default:
		return unparseable(ErrMetadataNotObject)
	}
}

func unparseable(err error) Metadata {
	return Metadata{Kind: MetadataUnparseable, Err: err}
}

func fieldsFromDocument(doc map[string]json.RawMessage) MetadataFields {
	fields := MetadataFields{
		ExternalPaymentID:     scalarString(doc[keyExternalPaymentID]),
		ExternalTransactionID: scalarString(doc[keyExternalTransactionID]),
	}

	// user_info не объект - просто игнорируем, остальные поля уже извлечены.
	if userInfoRaw, ok := doc[keyUserInfo]; ok {
		var userInfo map[string]json.RawMessage
		if err := json.Unmarshal(userInfoRaw, &userInfo); err == nil {
			fields.UserEmail = scalarString(userInfo[keyEmail])
		}
	}
	return fields
}

// scalarString возвращает строковое представление json строки или числа. Для остальных типов - пустую строку.
func scalarString(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	switch c := trimmed[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return ""
		}
		return n.String()
	default:
		return ""
	}
}

// Candidates возвращает непустые идентификаторы из метаданных без повторов.
func (m Metadata) Candidates() []string {
	if m.Kind != MetadataParsed {
		return []string{}
	}
	var set CandidateSet
	set.Add(m.Fields.ExternalPaymentID, m.Fields.ExternalTransactionID, m.Fields.UserEmail)
	return set.Values()
}
