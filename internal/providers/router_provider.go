package providers

import (
	"kgsite/internal/structures"
	"net/http"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	Handle(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	urls    []string
	methods map[string]map[string]http.Handler
	any     map[string]http.Handler
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.add(url, http.MethodGet, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.add(url, http.MethodPost, handler)
}

// Handle registers handler for every method not claimed by Get or Post.
func (rp *RouterProvider) Handle(url string, handler http.Handler) {
	rp.remember(url)
	rp.any[url] = handler
}

func (rp *RouterProvider) add(url, method string, handler http.Handler) {
	rp.remember(url)
	if rp.methods[url] == nil {
		rp.methods[url] = make(map[string]http.Handler)
	}
	rp.methods[url][method] = handler
}

func (rp *RouterProvider) remember(url string) {
	if _, ok := rp.methods[url]; ok {
		return
	}
	if _, ok := rp.any[url]; ok {
		return
	}
	rp.urls = append(rp.urls, url)
}

// GetRoutes returns one route per url, in registration order.
func (rp *RouterProvider) GetRoutes() []structures.Route {
	routes := make([]structures.Route, 0, len(rp.urls))
	for _, url := range rp.urls {
		routes = append(routes, structures.Route{
			Url:     url,
			Handler: methodHandler(rp.methods[url], rp.any[url]),
		})
	}
	return routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{
		methods: make(map[string]map[string]http.Handler),
		any:     make(map[string]http.Handler),
	}
}

func methodHandler(byMethod map[string]http.Handler, fallback http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := byMethod[r.Method]; ok {
			h.ServeHTTP(w, r)
			return
		}
		if fallback != nil {
			fallback.ServeHTTP(w, r)
			return
		}
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})
}
