package domain

// GroupKey identifies one email draft: all flagged reports sharing a buyer
// and supplier are batched together. Values are taken from the record
// exactly as extracted; no case or whitespace normalization is applied.
type GroupKey struct {
	Buyer    string
	Supplier string
}

// Recipients are the contacts for one buyer. Primary receives groups that
// contain a failed report, Secondary receives groups that were flagged by
// rules only.
type Recipients struct {
	Primary   string
	Secondary string
}

// Draft is the payload for one email draft, ready for a mail client.
type Draft struct {
	Key         GroupKey
	To          string
	Subject     string
	BodyHTML    string
	Attachments []string
}
