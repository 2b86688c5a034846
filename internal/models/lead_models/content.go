package lead_models

type Testimonial struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type Product struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Image       string `json:"image,omitempty"`
}

type DashboardStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Trend string `json:"trend"`
}

type Feature struct {
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type CustomSection struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Text          string `json:"text"`
	ImageURL      string `json:"imageUrl,omitempty"`
	ImagePosition string `json:"imagePosition"` // left | right | full
}

// AIPageContent is the generated mockup of a client's site. It is carried
// along with a lead but never interpreted by the ROI or ledger logic.
type AIPageContent struct {
	Title          string          `json:"title"`
	LogoURL        string          `json:"logoUrl"`
	PrimaryColor   string          `json:"primaryColor"`
	SecondaryColor string          `json:"secondaryColor"`
	Headline       string          `json:"headline"`
	Subheadline    string          `json:"subheadline"`
	HeroImage      string          `json:"heroImage,omitempty"`
	HeroTitle      string          `json:"heroTitle,omitempty"`
	HeroSubtitle   string          `json:"heroSubtitle,omitempty"`
	CTAText        string          `json:"ctaText,omitempty"`
	AboutTitle     string          `json:"aboutTitle,omitempty"`
	AboutText      string          `json:"aboutText,omitempty"`
	Services       []string        `json:"services,omitempty"`
	Testimonial    *Testimonial    `json:"testimonial,omitempty"`
	Products       []Product       `json:"products,omitempty"`
	DashboardStats []DashboardStat `json:"dashboardStats,omitempty"`
	SidebarItems   []string        `json:"sidebarItems,omitempty"`
	Features       []Feature       `json:"features,omitempty"`
	Modules        []string        `json:"modules,omitempty"`
	CustomSections []CustomSection `json:"customSections,omitempty"`
	Strategy       []string        `json:"strategy,omitempty"`
}

// TemplateDefinition is a starting point offered to the client before the
// editor opens.
type TemplateDefinition struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Preview        string        `json:"preview"`
	Description    string        `json:"description"`
	InitialContent AIPageContent `json:"initialContent"`
}

// LedgerSnapshot is the persisted state read in one pass.
type LedgerSnapshot struct {
	Leads      []DiagnosticRequest
	Views      int64
	QuizStarts int64
}
