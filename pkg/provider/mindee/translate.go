package mindee

import (
	"strings"

	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
)

// toInvoiceParser normalizes an invoice prediction. Mindee's supplier
// maps onto the canonical merchant, company registrations fan out by
// their declared type.
func toInvoiceParser(p *invoicePrediction) canonical.InvoiceParser {
	merchant := canonical.MerchantInformation{
		MerchantName:    p.SupplierName.Value,
		MerchantAddress: p.SupplierAddress.Value,
		MerchantPhone:   p.SupplierPhoneNumber.Value,
		MerchantEmail:   p.SupplierEmail.Value,
		MerchantWebsite: p.SupplierWebsite.Value,
	}
	var bank canonical.BankInformation
	for _, reg := range p.SupplierCompanyRegistrations {
		switch strings.ToUpper(reg.Type) {
		case "SIRET":
			merchant.MerchantSiret = reg.Value
		case "SIREN":
			merchant.MerchantSiren = reg.Value
		case "VAT NUMBER":
			bank.VATNumber = reg.Value
		case "TAX ID":
			merchant.MerchantTaxID = reg.Value
		}
	}
	for _, pd := range p.SupplierPaymentDetails {
		if bank.IBAN == nil {
			bank.IBAN = pd.IBAN
		}
		if bank.Swift == nil {
			bank.Swift = pd.Swift
		}
		if bank.AccountNumber == nil {
			bank.AccountNumber = pd.AccountNumber
		}
	}

	taxes := make([]canonical.InvoiceTax, 0, len(p.Taxes))
	for _, t := range p.Taxes {
		taxes = append(taxes, canonical.InvoiceTax{Value: t.Value, Rate: t.Rate})
	}

	lines := make([]canonical.InvoiceLine, 0, len(p.LineItems))
	for _, li := range p.LineItems {
		line := canonical.InvoiceLine{
			Description: li.Description,
			Amount:      li.TotalAmount,
			UnitPrice:   li.UnitPrice,
			ProductCode: li.ProductCode,
			TaxItem:     li.TaxAmount,
			TaxRate:     li.TaxRate,
		}
		if li.Quantity != nil {
			line.Quantity = canonical.Int(int(*li.Quantity))
		}
		lines = append(lines, line)
	}

	return canonical.InvoiceParser{
		ExtractedData: []canonical.InvoiceData{{
			CustomerInformation: canonical.CustomerInformation{
				CustomerName:    p.CustomerName.Value,
				CustomerAddress: p.CustomerAddress.Value,
			},
			MerchantInformation: merchant,
			InvoiceNumber:       p.InvoiceNumber.Value,
			InvoiceTotal:        p.TotalAmount.Value,
			InvoiceSubtotal:     p.TotalNet.Value,
			Taxes:               taxes,
			Date:                p.Date.Value,
			DueDate:             p.DueDate.Value,
			Locale: canonical.InvoiceLocale{
				Currency: p.Locale.Currency,
				Language: p.Locale.Language,
			},
			BankInformation: bank,
			ItemLines:       lines,
		}},
	}
}

// toIdentityParser normalizes an international_id prediction.
// Surnames concatenate into the canonical last_name; the two MRZ lines
// join into one.
func toIdentityParser(p *identityPrediction) canonical.IdentityParser {
	given := make([]canonical.IdentityItem, 0, len(p.GivenNames))
	for _, g := range p.GivenNames {
		given = append(given, canonical.IdentityItem{Value: titleCase(g.Value), Confidence: g.Confidence})
	}

	var lastName canonical.IdentityItem
	if len(p.Surnames) > 0 {
		parts := make([]string, 0, len(p.Surnames))
		for _, s := range p.Surnames {
			if s.Value != nil {
				parts = append(parts, strings.ToUpper(*s.Value))
			}
		}
		lastName = canonical.IdentityItem{
			Value:      canonical.Str(strings.Join(parts, " ")),
			Confidence: p.Surnames[0].Confidence,
		}
	}

	var mrz canonical.IdentityItem
	if p.MRZLine1.Value != nil || p.MRZLine2.Value != nil {
		var parts []string
		if p.MRZLine1.Value != nil {
			parts = append(parts, *p.MRZLine1.Value)
		}
		if p.MRZLine2.Value != nil {
			parts = append(parts, *p.MRZLine2.Value)
		}
		mrz = canonical.IdentityItem{Value: canonical.Str(strings.Join(parts, ""))}
	}

	return canonical.IdentityParser{
		ExtractedData: []canonical.IdentityData{{
			LastName:     lastName,
			GivenNames:   given,
			BirthPlace:   toItem(p.BirthPlace),
			BirthDate:    toItem(p.BirthDate),
			IssuanceDate: toItem(p.IssueDate),
			ExpireDate:   toItem(p.ExpiryDate),
			DocumentID:   toItem(p.DocumentNumber),
			IssuingState: toItem(p.StateOfIssue),
			Address:      toItem(p.Address),
			Country: canonical.IdentityCountry{
				Alpha3: p.CountryOfIssue.Value,
			},
			DocumentType: toItem(p.DocumentType),
			Gender:       toItem(p.Sex),
			MRZ:          mrz,
			Nationality:  toItem(p.Nationality),
		}},
	}
}

func toItem(f stringField) canonical.IdentityItem {
	return canonical.IdentityItem{Value: f.Value, Confidence: f.Confidence}
}

func titleCase(s *string) *string {
	if s == nil {
		return nil
	}
	lower := strings.ToLower(*s)
	out := make([]string, 0, 2)
	for _, word := range strings.Fields(lower) {
		out = append(out, strings.ToUpper(word[:1])+word[1:])
	}
	return canonical.Str(strings.Join(out, " "))
}
