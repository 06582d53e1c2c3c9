package insider

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/quantfold/filingscan/internal/forms"
)

// ownershipDocument is the shared XML root of Forms 3, 4 and 5.
type ownershipDocument struct {
	XMLName        xml.Name            `xml:"ownershipDocument"`
	DocumentType   string              `xml:"documentType"`
	PeriodOfReport string              `xml:"periodOfReport"`
	Issuer         issuer              `xml:"issuer"`
	Owners         []reportingOwner    `xml:"reportingOwner"`
	NonDerivative  *nonDerivativeTable `xml:"nonDerivativeTable"`
	Derivative     *derivativeTable    `xml:"derivativeTable"`
	Footnotes      []footnote          `xml:"footnotes>footnote"`
}

type issuer struct {
	CIK           string `xml:"issuerCik"`
	Name          string `xml:"issuerName"`
	TradingSymbol string `xml:"issuerTradingSymbol"`
}

type reportingOwner struct {
	ID           ownerID           `xml:"reportingOwnerId"`
	Relationship ownerRelationship `xml:"reportingOwnerRelationship"`
}

type ownerID struct {
	CIK  string `xml:"rptOwnerCik"`
	Name string `xml:"rptOwnerName"`
}

type ownerRelationship struct {
	IsDirector        xmlBool `xml:"isDirector"`
	IsOfficer         xmlBool `xml:"isOfficer"`
	IsTenPercentOwner xmlBool `xml:"isTenPercentOwner"`
	IsOther           xmlBool `xml:"isOther"`
	OfficerTitle      string  `xml:"officerTitle"`
}

type nonDerivativeTable struct {
	Transactions []xmlTransaction `xml:"nonDerivativeTransaction"`
}

type derivativeTable struct {
	Transactions []xmlTransaction `xml:"derivativeTransaction"`
}

// xmlTransaction covers the fields shared by derivative and non-derivative
// transaction elements.
type xmlTransaction struct {
	SecurityTitle   string          `xml:"securityTitle>value"`
	TransactionDate string          `xml:"transactionDate>value"`
	Coding          coding          `xml:"transactionCoding"`
	Amounts         amounts         `xml:"transactionAmounts"`
	PostTransaction postTransaction `xml:"postTransactionAmounts"`
	Ownership       ownershipNature `xml:"ownershipNature"`
}

type coding struct {
	Code string `xml:"transactionCode"`
}

type amounts struct {
	Shares           xmlValue `xml:"transactionShares"`
	PricePerShare    xmlValue `xml:"transactionPricePerShare"`
	AcquiredDisposed string   `xml:"transactionAcquiredDisposedCode>value"`
}

type postTransaction struct {
	SharesOwnedFollowing xmlValue `xml:"sharesOwnedFollowingTransaction"`
}

type ownershipNature struct {
	DirectOrIndirect string `xml:"directOrIndirectOwnership>value"`
}

type footnote struct {
	ID   string `xml:"id,attr"`
	Text string `xml:",chardata"`
}

// xmlValue is the <element><value>…</value></element> wrapper the ownership
// schema uses for most scalars.
type xmlValue struct {
	Value string `xml:"value"`
}

// Float64 reports false for an empty or unparseable value.
func (v xmlValue) Float64() (float64, bool) {
	s := strings.TrimSpace(v.Value)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// xmlBool accepts the "1"/"true"/"yes" spellings filers use.
type xmlBool bool

func (b *xmlBool) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		*b = true
	default:
		*b = false
	}
	return nil
}

func decodeDocument(content string) (*ownershipDocument, error) {
	var doc ownershipDocument
	if err := xml.Unmarshal([]byte(forms.StripNamespaces(content)), &doc); err != nil {
		return nil, fmt.Errorf("decode ownership document: %w", err)
	}
	return &doc, nil
}
