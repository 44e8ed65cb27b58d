package viewmodels

type LoginViewData struct {
	Title         string
	Action        string
	Username      string
	Banner        ErrorBannerViewData
	HTMXScriptURL string
}

// ErrorBannerViewData renders the #error region. Hidden adds the hidden class
// to the region's container.
type ErrorBannerViewData struct {
	Message string
	Hidden  bool
}
