package expertise

// Controller keeps the domain and profile resolved for one session.
type Controller struct {
	loader  *Loader
	domain  string
	profile Profile
}

func NewController(loader *Loader) *Controller {
	return &Controller{loader: loader, profile: Profile{}}
}

// Configure resolves and stores the session profile. See Loader.Load.
func (c *Controller) Configure(domain, text string) Profile {
	c.domain, c.profile = c.loader.Load(domain, text)
	return c.profile
}

func (c *Controller) Domain() string {
	return c.domain
}

func (c *Controller) Profile() Profile {
	return c.profile
}
