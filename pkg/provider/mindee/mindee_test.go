package mindee

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
	"github.com/Jiyath5516F/edenai-apis/pkg/equivalence"
	"github.com/Jiyath5516F/edenai-apis/pkg/jsonx"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider"
)

func newTestAdapter(t *testing.T, handler http.Handler) *Mindee {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(provider.Settings{APIKey: "key", BaseURL: srv.URL})
}

const invoiceResponse = `{
  "api_request": {"status": "success", "status_code": 201},
  "document": {
    "inference": {
      "prediction": {
        "customer_name": {"value": "ACME GmbH", "confidence": 0.97},
        "customer_address": {"value": "1 Hauptstr, Berlin", "confidence": 0.91},
        "date": {"value": "2024-03-17", "confidence": 0.99},
        "due_date": {"value": "2024-04-16", "confidence": 0.95},
        "invoice_number": {"value": "INV-2024-0042", "confidence": 0.99},
        "locale": {"currency": "EUR", "language": "de"},
        "supplier_name": {"value": "Papier & Co", "confidence": 0.98},
        "supplier_address": {"value": "9 Rue de la Paix, Paris", "confidence": 0.9},
        "supplier_company_registrations": [
          {"type": "SIRET", "value": "12345678900017"},
          {"type": "SIREN", "value": "123456789"},
          {"type": "VAT NUMBER", "value": "FR12345678901"}
        ],
        "supplier_payment_details": [
          {"iban": "FR7630006000011234567890189", "swift": "AGRIFRPP", "account_number": null}
        ],
        "taxes": [{"value": 19.4, "rate": 20.0}],
        "total_amount": {"value": 116.4},
        "total_net": {"value": 97.0},
        "line_items": [
          {
            "description": "A4 paper, 500 sheets",
            "quantity": 3.0,
            "total_amount": 97.0,
            "unit_price": 32.33,
            "product_code": "A4-500",
            "tax_amount": 19.4,
            "tax_rate": 20.0
          }
        ]
      }
    }
  }
}`

const identityResponse = `{
  "api_request": {"status": "success", "status_code": 201},
  "document": {
    "inference": {
      "prediction": {
        "document_type": {"value": "PASSPORT", "confidence": 0.99},
        "document_number": {"value": "707797979", "confidence": 0.98},
        "surnames": [{"value": "MARTIN", "confidence": 0.97}, {"value": "DUPONT", "confidence": 0.95}],
        "given_names": [{"value": "JEAN", "confidence": 0.96}, {"value": "PIERRE", "confidence": 0.94}],
        "birth_date": {"value": "1985-06-02", "confidence": 0.99},
        "birth_place": {"value": "LYON", "confidence": 0.9},
        "sex": {"value": "M", "confidence": 0.99},
        "country_of_issue": {"value": "FRA", "confidence": 0.99},
        "state_of_issue": {"value": null, "confidence": 0.0},
        "issue_date": {"value": "2019-01-15", "confidence": 0.97},
        "expiry_date": {"value": "2029-01-14", "confidence": 0.97},
        "nationality": {"value": "FRA", "confidence": 0.98},
        "address": {"value": null, "confidence": 0.0},
        "mrz_line1": {"value": "P<FRAMARTIN<DUPONT<<JEAN<PIERRE<<<<<<<<<<<<<", "confidence": 0.99},
        "mrz_line2": {"value": "7077979792FRA8506027M2901149<<<<<<<<<<<<<<04", "confidence": 0.99}
      }
    }
  }
}`

func TestParseInvoice(t *testing.T) {
	d := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != invoicePath {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Token key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart body: %v", err)
		}
		if _, _, err := r.FormFile("document"); err != nil {
			t.Errorf("expected document part: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(invoiceResponse))
	}))

	resp, err := d.ParseInvoice(context.Background(), &canonical.OCRRequest{
		File: canonical.FileInput{Name: "invoice.pdf", Content: []byte("%PDF-1.4")},
	})
	if err != nil {
		t.Fatalf("ParseInvoice failed: %v", err)
	}
	if len(resp.Standardized.ExtractedData) != 1 {
		t.Fatalf("expected one extracted document, got %d", len(resp.Standardized.ExtractedData))
	}
	data := resp.Standardized.ExtractedData[0]

	if got := data.MerchantInformation.MerchantName; got == nil || *got != "Papier & Co" {
		t.Errorf("unexpected merchant name %v", got)
	}
	if got := data.MerchantInformation.MerchantSiret; got == nil || *got != "12345678900017" {
		t.Errorf("SIRET registration should map to merchant_siret, got %v", got)
	}
	if got := data.MerchantInformation.MerchantSiren; got == nil || *got != "123456789" {
		t.Errorf("SIREN registration should map to merchant_siren, got %v", got)
	}
	if got := data.BankInformation.VATNumber; got == nil || *got != "FR12345678901" {
		t.Errorf("VAT registration should map to bank vat_number, got %v", got)
	}
	if got := data.BankInformation.IBAN; got == nil || *got != "FR7630006000011234567890189" {
		t.Errorf("unexpected IBAN %v", got)
	}
	if got := data.InvoiceTotal; got == nil || *got != 116.4 {
		t.Errorf("unexpected invoice total %v", got)
	}
	if got := data.InvoiceSubtotal; got == nil || *got != 97.0 {
		t.Errorf("unexpected invoice subtotal %v", got)
	}
	if len(data.Taxes) != 1 || data.Taxes[0].Rate == nil || *data.Taxes[0].Rate != 20.0 {
		t.Errorf("unexpected taxes %+v", data.Taxes)
	}
	if len(data.ItemLines) != 1 {
		t.Fatalf("expected one item line, got %d", len(data.ItemLines))
	}
	if q := data.ItemLines[0].Quantity; q == nil || *q != 3 {
		t.Errorf("fractional quantity should truncate to int, got %v", q)
	}
	if got := data.Locale.Currency; got == nil || *got != "EUR" {
		t.Errorf("unexpected currency %v", got)
	}

	if _, ok := resp.Original.Get("api_request"); !ok {
		t.Error("expected original_response to carry the vendor payload")
	}
}

func TestParseIdentity(t *testing.T) {
	d := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != identityPath {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(identityResponse))
	}))

	resp, err := d.ParseIdentity(context.Background(), &canonical.OCRRequest{
		File: canonical.FileInput{Name: "passport.jpg", Content: []byte("jpeg")},
	})
	if err != nil {
		t.Fatalf("ParseIdentity failed: %v", err)
	}
	if len(resp.Standardized.ExtractedData) != 1 {
		t.Fatalf("expected one extracted document, got %d", len(resp.Standardized.ExtractedData))
	}
	data := resp.Standardized.ExtractedData[0]

	if got := data.LastName.Value; got == nil || *got != "MARTIN DUPONT" {
		t.Errorf("surnames should join uppercased, got %v", got)
	}
	if len(data.GivenNames) != 2 {
		t.Fatalf("expected two given names, got %d", len(data.GivenNames))
	}
	if got := data.GivenNames[0].Value; got == nil || *got != "Jean" {
		t.Errorf("given names should be title-cased, got %v", got)
	}
	if got := data.Country.Alpha3; got == nil || *got != "FRA" {
		t.Errorf("unexpected country %v", got)
	}
	if got := data.MRZ.Value; got == nil || *got != "P<FRAMARTIN<DUPONT<<JEAN<PIERRE<<<<<<<<<<<<<7077979792FRA8506027M2901149<<<<<<<<<<<<<<04" {
		t.Errorf("MRZ lines should concatenate, got %v", got)
	}
	if data.Address.Value != nil {
		t.Errorf("null address should stay nil, got %v", data.Address.Value)
	}
	if got := data.Gender.Value; got == nil || *got != "M" {
		t.Errorf("unexpected gender %v", got)
	}
}

func TestParseInvoice_VendorFailureInsideEnvelope(t *testing.T) {
	d := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"api_request": {"status": "failure", "status_code": 400, "error": {"message": "Invalid document type"}},
			"document": null
		}`))
	}))

	_, err := d.ParseInvoice(context.Background(), &canonical.OCRRequest{
		File: canonical.FileInput{Name: "notes.txt", Content: []byte("plain text")},
	})
	var pe *canonical.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProviderError, got %T (%v)", err, err)
	}
	if pe.Message != "Invalid document type" {
		t.Errorf("unexpected message %q", pe.Message)
	}
	if pe.Code != 400 {
		t.Errorf("unexpected status %d", pe.Code)
	}
}

func TestParseInvoice_RequiresContent(t *testing.T) {
	d := New(provider.Settings{APIKey: "key"})
	_, err := d.ParseInvoice(context.Background(), &canonical.OCRRequest{})
	var ie *canonical.InvalidInputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InvalidInputError, got %T", err)
	}
}

func TestParseIdentity_MatchesGoldenShape(t *testing.T) {
	d := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(identityResponse))
	}))

	resp, err := d.ParseIdentity(context.Background(), &canonical.OCRRequest{
		File: canonical.FileInput{Name: "passport.jpg", Content: []byte("jpeg")},
	})
	if err != nil {
		t.Fatalf("ParseIdentity failed: %v", err)
	}

	live, err := jsonx.FromRecord(resp.Standardized)
	if err != nil {
		t.Fatalf("FromRecord failed: %v", err)
	}
	golden, err := jsonx.FromRecord(canonical.IdentityParser{
		ExtractedData: []canonical.IdentityData{{
			LastName:   canonical.IdentityItem{Value: canonical.Str("DOE"), Confidence: canonical.Float(0.9)},
			GivenNames: []canonical.IdentityItem{{Value: canonical.Str("Jane"), Confidence: canonical.Float(0.9)}},
		}},
	})
	if err != nil {
		t.Fatalf("FromRecord failed: %v", err)
	}
	if err := equivalence.Check(golden, live, nil); err != nil {
		t.Errorf("standardized response diverges from canonical shape: %v", err)
	}
}
