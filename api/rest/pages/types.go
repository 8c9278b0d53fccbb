package pages

// User is the signed-in identity shown on browser pages
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

type LandingResponse struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

type DashboardResponse struct {
	User      User   `json:"user"`
	AuthToken string `json:"auth_token"`
}

type Plan struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type PricingResponse struct {
	Authenticated bool   `json:"authenticated"`
	Plans         []Plan `json:"plans"`
}
