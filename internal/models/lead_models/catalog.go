package lead_models

// ServiceOffer is one tier of the agency's price list.
type ServiceOffer struct {
	Type           ServiceType
	Label          string
	PlanName       string
	Price          int64
	ConversionRate float64
	AvgTicket      int64
}

// ServiceCatalog is shared by the ROI estimator and the analytics
// aggregator so a price change lands in both places at once.
type ServiceCatalog struct {
	offers   map[ServiceType]ServiceOffer
	order    []ServiceType
	fallback ServiceOffer
}

const fallbackAvgTicket = 200

func NewServiceCatalog(offers []ServiceOffer, fallback ServiceOffer) *ServiceCatalog {
	c := &ServiceCatalog{
		offers:   make(map[ServiceType]ServiceOffer, len(offers)),
		fallback: fallback,
	}
	for _, o := range offers {
		if _, dup := c.offers[o.Type]; !dup {
			c.order = append(c.order, o.Type)
		}
		c.offers[o.Type] = o
	}
	return c
}

func DefaultServiceCatalog() *ServiceCatalog {
	site := ServiceOffer{
		Type:           ServiceSite,
		Label:          "Landing Page Premium",
		PlanName:       "Site Essencial",
		Price:          200,
		ConversionRate: 0.03,
		AvgTicket:      250,
	}
	fallback := site
	fallback.AvgTicket = fallbackAvgTicket

	return NewServiceCatalog([]ServiceOffer{
		site,
		{
			Type:           ServiceEcommerce,
			Label:          "E-commerce Pro",
			PlanName:       "E-commerce Pro",
			Price:          1200,
			ConversionRate: 0.04,
			AvgTicket:      150,
		},
		{
			Type:           ServiceSystem,
			Label:          "Sistema Web Gestão",
			PlanName:       "Sistema Custom",
			Price:          3000,
			ConversionRate: 0.08,
			AvgTicket:      900,
		},
	}, fallback)
}

// Lookup never fails: unknown service types get the fallback tier.
func (c *ServiceCatalog) Lookup(t ServiceType) ServiceOffer {
	if o, ok := c.offers[t]; ok {
		return o
	}
	return c.fallback
}

func (c *ServiceCatalog) Offers() []ServiceOffer {
	out := make([]ServiceOffer, 0, len(c.order))
	for _, t := range c.order {
		out = append(out, c.offers[t])
	}
	return out
}
