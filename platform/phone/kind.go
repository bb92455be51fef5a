package phone

// Kind is the contact mechanism type a value is registered under.
type Kind string

const (
	KindPhone   Kind = "phone"
	KindMobile  Kind = "mobile"
	KindFax     Kind = "fax"
	KindEmail   Kind = "email"
	KindWebsite Kind = "website"
	KindSkype   Kind = "skype"
	KindSIP     Kind = "sip"
	KindIRC     Kind = "irc"
	KindJabber  Kind = "jabber"
	KindOther   Kind = "other"
)

// Kinds lists every contact mechanism kind in display order.
var Kinds = []Kind{
	KindPhone, KindMobile, KindFax, KindEmail, KindWebsite,
	KindSkype, KindSIP, KindIRC, KindJabber, KindOther,
}

// PhoneKinds lists the kinds subject to phone number normalization.
var PhoneKinds = []Kind{KindPhone, KindMobile, KindFax}

// IsPhone reports whether values of this kind are normalized as phone numbers.
func (k Kind) IsPhone() bool {
	switch k {
	case KindPhone, KindMobile, KindFax:
		return true
	default:
		return false
	}
}

// IsKnown reports whether k is one of the supported contact mechanism kinds.
func (k Kind) IsKnown() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// PhoneKindStrings returns the phone kinds as plain strings for SQL parameters.
func PhoneKindStrings() []string {
	out := make([]string, len(PhoneKinds))
	for i, k := range PhoneKinds {
		out[i] = string(k)
	}
	return out
}
