package domain

// SiteSettings is the replace-in-place "settings" section.
type SiteSettings struct {
	SiteTitle       string            `json:"siteTitle" yaml:"siteTitle"`
	HeroHeadline    string            `json:"heroHeadline" yaml:"heroHeadline"`
	HeroSubheadline string            `json:"heroSubheadline" yaml:"heroSubheadline"`
	PrimaryColor    string            `json:"primaryColor" yaml:"primaryColor"`
	SecondaryColor  string            `json:"secondaryColor" yaml:"secondaryColor"`
	ContactEmail    string            `json:"contactEmail" yaml:"contactEmail"`
	ContactPhone    string            `json:"contactPhone" yaml:"contactPhone"`
	CompanyName     string            `json:"companyName" yaml:"companyName"`
	WhatsappNumber  string            `json:"whatsappNumber" yaml:"whatsappNumber"`
	SocialMedia     map[string]string `json:"socialMedia" yaml:"socialMedia"`
	HeaderLogo      *string           `json:"headerLogo" yaml:"headerLogo"`
	FooterLogo      *string           `json:"footerLogo" yaml:"footerLogo"`
}

// Clone returns a deep copy of s.
func (s SiteSettings) Clone() SiteSettings {
	c := s
	if s.SocialMedia != nil {
		c.SocialMedia = make(map[string]string, len(s.SocialMedia))
		for k, v := range s.SocialMedia {
			c.SocialMedia[k] = v
		}
	}
	if s.HeaderLogo != nil {
		v := *s.HeaderLogo
		c.HeaderLogo = &v
	}
	if s.FooterLogo != nil {
		v := *s.FooterLogo
		c.FooterLogo = &v
	}
	return c
}

// PublicSettings is the subset of SiteSettings safe to serve anonymously.
// It deliberately has no field able to carry the password hash or SMTP data.
type PublicSettings struct {
	SiteTitle       string            `json:"siteTitle"`
	HeroHeadline    string            `json:"heroHeadline"`
	HeroSubheadline string            `json:"heroSubheadline"`
	PrimaryColor    string            `json:"primaryColor"`
	SecondaryColor  string            `json:"secondaryColor"`
	ContactEmail    string            `json:"contactEmail"`
	ContactPhone    string            `json:"contactPhone"`
	CompanyName     string            `json:"companyName"`
	WhatsappNumber  string            `json:"whatsappNumber"`
	SocialMedia     map[string]string `json:"socialMedia"`
	HeaderLogo      *string           `json:"headerLogo"`
	FooterLogo      *string           `json:"footerLogo"`
}

// Public projects s onto the anonymous view. defaultCompany fills an empty company name.
func (s *SiteSettings) Public(defaultCompany string) PublicSettings {
	if s == nil {
		return PublicSettings{CompanyName: defaultCompany, SocialMedia: map[string]string{}}
	}
	c := s.Clone()
	p := PublicSettings{
		SiteTitle:       c.SiteTitle,
		HeroHeadline:    c.HeroHeadline,
		HeroSubheadline: c.HeroSubheadline,
		PrimaryColor:    c.PrimaryColor,
		SecondaryColor:  c.SecondaryColor,
		ContactEmail:    c.ContactEmail,
		ContactPhone:    c.ContactPhone,
		CompanyName:     c.CompanyName,
		WhatsappNumber:  c.WhatsappNumber,
		SocialMedia:     c.SocialMedia,
		HeaderLogo:      c.HeaderLogo,
		FooterLogo:      c.FooterLogo,
	}
	if p.CompanyName == "" {
		p.CompanyName = defaultCompany
	}
	if p.SocialMedia == nil {
		p.SocialMedia = map[string]string{}
	}
	return p
}

// SMTPConfig is the single outbound mail configuration record.
// JSON names follow the historical snake_case keys of the stored document.
type SMTPConfig struct {
	Host      string `json:"host" yaml:"host"`
	Port      int    `json:"port" yaml:"port"`
	Username  string `json:"username" yaml:"username"`
	Password  string `json:"password" yaml:"password"`
	FromEmail string `json:"from_email" yaml:"from_email"`
	FromName  string `json:"from_name" yaml:"from_name"`
}

// Configured reports whether c carries enough to attempt a delivery.
func (c *SMTPConfig) Configured() bool {
	return c != nil && c.Host != "" && c.Port > 0
}
