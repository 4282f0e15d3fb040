package canonical

// OCRRequest is the input of file-consuming OCR subfeatures.
type OCRRequest struct {
	File     FileInput `json:"file"`
	Language string    `json:"language"`
}

// CustomerInformation holds the buyer-side fields of an invoice.
type CustomerInformation struct {
	CustomerName            *string `json:"customer_name"`
	CustomerAddress         *string `json:"customer_address"`
	CustomerEmail           *string `json:"customer_email"`
	CustomerID              *string `json:"customer_id"`
	CustomerTaxID           *string `json:"customer_tax_id"`
	CustomerBillingAddress  *string `json:"customer_billing_address"`
	CustomerShippingAddress *string `json:"customer_shipping_address"`
}

// MerchantInformation holds the seller-side fields of an invoice.
type MerchantInformation struct {
	MerchantName    *string `json:"merchant_name"`
	MerchantAddress *string `json:"merchant_address"`
	MerchantPhone   *string `json:"merchant_phone"`
	MerchantEmail   *string `json:"merchant_email"`
	MerchantWebsite *string `json:"merchant_website"`
	MerchantTaxID   *string `json:"merchant_tax_id"`
	MerchantSiret   *string `json:"merchant_siret"`
	MerchantSiren   *string `json:"merchant_siren"`
}

// InvoiceLocale identifies the currency and language of an invoice.
type InvoiceLocale struct {
	Currency *string `json:"currency"`
	Language *string `json:"language"`
}

// InvoiceLine is a single billed item line.
type InvoiceLine struct {
	Description *string  `json:"description"`
	Quantity    *int     `json:"quantity"`
	Amount      *float64 `json:"amount"`
	UnitPrice   *float64 `json:"unit_price"`
	ProductCode *string  `json:"product_code"`
	TaxItem     *float64 `json:"tax_item"`
	TaxRate     *float64 `json:"tax_rate"`
}

// InvoiceTax is one tax entry of an invoice summary.
type InvoiceTax struct {
	Value *float64 `json:"value"`
	Rate  *float64 `json:"rate"`
}

// BankInformation holds payment coordinates found on an invoice.
type BankInformation struct {
	AccountNumber *string `json:"account_number"`
	IBAN          *string `json:"iban"`
	SortCode      *string `json:"sort_code"`
	VATNumber     *string `json:"vat_number"`
	Swift         *string `json:"swift"`
}

// InvoiceData is the set of fields extracted from one invoice document.
type InvoiceData struct {
	CustomerInformation CustomerInformation `json:"customer_information"`
	MerchantInformation MerchantInformation `json:"merchant_information"`
	InvoiceNumber       *string             `json:"invoice_number"`
	InvoiceTotal        *float64            `json:"invoice_total"`
	InvoiceSubtotal     *float64            `json:"invoice_subtotal"`
	AmountDue           *float64            `json:"amount_due"`
	Discount            *float64            `json:"discount"`
	Taxes               []InvoiceTax        `json:"taxes"`
	PaymentTerm         *string             `json:"payment_term"`
	PurchaseOrder       *string             `json:"purchase_order"`
	Date                *string             `json:"date"`
	DueDate             *string             `json:"due_date"`
	Locale              InvoiceLocale       `json:"locale"`
	BankInformation     BankInformation     `json:"bank_informations"`
	ItemLines           []InvoiceLine       `json:"item_lines"`
}

// InvoiceParser is the standardized record of ocr/invoice_parser.
type InvoiceParser struct {
	ExtractedData []InvoiceData `json:"extracted_data"`
}

// IdentityItem is one extracted identity field with its confidence.
type IdentityItem struct {
	Value      *string  `json:"value"`
	Confidence *float64 `json:"confidence"`
}

// IdentityCountry identifies the issuing country of a document.
type IdentityCountry struct {
	Name   *string `json:"name"`
	Alpha2 *string `json:"alpha2"`
	Alpha3 *string `json:"alpha3"`
}

// IdentityData is the set of fields extracted from one identity document.
type IdentityData struct {
	LastName     IdentityItem    `json:"last_name"`
	GivenNames   []IdentityItem  `json:"given_names"`
	BirthPlace   IdentityItem    `json:"birth_place"`
	BirthDate    IdentityItem    `json:"birth_date"`
	IssuanceDate IdentityItem    `json:"issuance_date"`
	ExpireDate   IdentityItem    `json:"expire_date"`
	DocumentID   IdentityItem    `json:"document_id"`
	IssuingState IdentityItem    `json:"issuing_state"`
	Address      IdentityItem    `json:"address"`
	Country      IdentityCountry `json:"country"`
	DocumentType IdentityItem    `json:"document_type"`
	Gender       IdentityItem    `json:"gender"`
	MRZ          IdentityItem    `json:"mrz"`
	Nationality  IdentityItem    `json:"nationality"`
}

// IdentityParser is the standardized record of ocr/identity_parser.
type IdentityParser struct {
	ExtractedData []IdentityData `json:"extracted_data"`
}
