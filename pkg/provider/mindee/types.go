package mindee

import "github.com/Jiyath5516F/edenai-apis/pkg/canonical"

// Wire types for the Mindee prediction API. Mindee wraps every
// extracted field in an object carrying the value and a confidence;
// values are strings or numbers depending on the product field.

type stringField struct {
	Value      *string  `json:"value"`
	Confidence *float64 `json:"confidence"`
}

type amountField struct {
	Value *float64 `json:"value"`
}

type predictResponse[T any] struct {
	APIRequest struct {
		Status     string `json:"status"` // "success" or "failure"
		StatusCode int    `json:"status_code"`
		Error      struct {
			Message string `json:"message"`
		} `json:"error"`
	} `json:"api_request"`
	Document struct {
		Inference struct {
			Prediction T `json:"prediction"`
		} `json:"inference"`
	} `json:"document"`
}

// vendorError reports a failure Mindee signalled inside a 2xx envelope.
func (r *predictResponse[T]) vendorError() error {
	if r.APIRequest.Status == "failure" {
		msg := r.APIRequest.Error.Message
		if msg == "" {
			msg = "document processing failed"
		}
		return canonical.NewProviderHTTPError(providerName, msg, r.APIRequest.StatusCode)
	}
	return nil
}

type invoicePrediction struct {
	CustomerName    stringField `json:"customer_name"`
	CustomerAddress stringField `json:"customer_address"`
	Date            stringField `json:"date"`
	DueDate         stringField `json:"due_date"`
	InvoiceNumber   stringField `json:"invoice_number"`
	Locale          struct {
		Currency *string `json:"currency"`
		Language *string `json:"language"`
	} `json:"locale"`
	SupplierName                 stringField `json:"supplier_name"`
	SupplierAddress              stringField `json:"supplier_address"`
	SupplierPhoneNumber          stringField `json:"supplier_phone_number"`
	SupplierEmail                stringField `json:"supplier_email"`
	SupplierWebsite              stringField `json:"supplier_website"`
	SupplierCompanyRegistrations []struct {
		Type  string  `json:"type"` // SIRET, SIREN, VAT NUMBER, TAX ID
		Value *string `json:"value"`
	} `json:"supplier_company_registrations"`
	SupplierPaymentDetails []struct {
		IBAN          *string `json:"iban"`
		Swift         *string `json:"swift"`
		AccountNumber *string `json:"account_number"`
	} `json:"supplier_payment_details"`
	Taxes []struct {
		Value *float64 `json:"value"`
		Rate  *float64 `json:"rate"`
	} `json:"taxes"`
	TotalAmount amountField `json:"total_amount"`
	TotalNet    amountField `json:"total_net"`
	LineItems   []struct {
		Description *string  `json:"description"`
		Quantity    *float64 `json:"quantity"`
		TotalAmount *float64 `json:"total_amount"`
		UnitPrice   *float64 `json:"unit_price"`
		ProductCode *string  `json:"product_code"`
		TaxAmount   *float64 `json:"tax_amount"`
		TaxRate     *float64 `json:"tax_rate"`
	} `json:"line_items"`
}

type identityPrediction struct {
	DocumentType   stringField   `json:"document_type"`
	DocumentNumber stringField   `json:"document_number"`
	Surnames       []stringField `json:"surnames"`
	GivenNames     []stringField `json:"given_names"`
	BirthDate      stringField   `json:"birth_date"`
	BirthPlace     stringField   `json:"birth_place"`
	Sex            stringField   `json:"sex"`
	CountryOfIssue stringField   `json:"country_of_issue"`
	StateOfIssue   stringField   `json:"state_of_issue"`
	IssueDate      stringField   `json:"issue_date"`
	ExpiryDate     stringField   `json:"expiry_date"`
	Nationality    stringField   `json:"nationality"`
	Address        stringField   `json:"address"`
	MRZLine1       stringField   `json:"mrz_line1"`
	MRZLine2       stringField   `json:"mrz_line2"`
}
