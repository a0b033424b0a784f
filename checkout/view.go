package checkout

import "onlyexchange/catalog"

// View is the JSON shape of a session handed to the page.
type View struct {
	ID      string       `json:"id"`
	Product string       `json:"product"`
	Plan    catalog.Plan `json:"plan"`

	Method Method  `json:"method"`
	Chain  Chain   `json:"chain,omitempty"`
	Chains []Chain `json:"chains,omitempty"`

	Email       string `json:"email"`
	EmailLocked bool   `json:"email_locked"`

	Step             Step   `json:"step"`
	Address          string `json:"address,omitempty"`
	LockedAmount     string `json:"locked_amount,omitempty"`
	PaySecsRemaining int    `json:"pay_secs_remaining"`
	StatusMessage    string `json:"status_message,omitempty"`

	PaymentURI         string `json:"payment_uri,omitempty"`
	QRImageURL         string `json:"qr_image_url,omitempty"`
	QRImageFallbackURL string `json:"qr_image_fallback_url,omitempty"`
	DemoAddress        bool   `json:"demo_address,omitempty"`
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:               s.ID,
		Product:          s.Product.Slug,
		Plan:             s.Plan,
		Method:           s.Method,
		Chain:            s.Chain,
		Chains:           s.Method.Chains(),
		Email:            s.Email,
		EmailLocked:      s.EmailLocked,
		Step:             s.Step,
		Address:          s.Address,
		LockedAmount:     s.LockedAmount,
		PaySecsRemaining: s.PaySecsRemaining,
		StatusMessage:    s.StatusMessage,
		DemoAddress:      s.fallback,
	}
	if s.Step == StepPay && s.Address != "" {
		uri := PaymentURI(s.Method, s.Address, s.LockedAmount)
		v.PaymentURI = uri
		v.QRImageURL = QRImageURL(uri)
		v.QRImageFallbackURL = QRImageFallbackURL(uri)
	}
	return v
}
