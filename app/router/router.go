package router

import (
	"net/http"
	"strings"

	"fern-and-paper/app/controller"
	"fern-and-paper/app/middleware"
)

type Controllers struct {
	Product *controller.ProductController
	Order   *controller.OrderController
	User    *controller.UserController
	Upload  *controller.UploadController
	Catalog *controller.CatalogController
	Auth    *middleware.AuthMiddleware
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(c *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Product collection - public list, admin create
	http.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			c.Product.List(w, r)
		} else if r.Method == http.MethodPost {
			c.Auth.AdminOnly(c.Product.Create)(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Storefront extras (must be registered before the generic /:id route)
	http.HandleFunc("/api/products/top", c.Product.Top)
	http.HandleFunc("/api/products/categories", c.Product.Categories)

	// Product by id, reviews and line-item resolution
	http.HandleFunc("/api/products/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/products/")

		if strings.HasSuffix(path, "/reviews") {
			if r.Method != http.MethodPost {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			id := controller.ExtractProductID(r.URL.Path, "/reviews")
			c.Auth.Protect(func(w http.ResponseWriter, r *http.Request) {
				c.Product.CreateReview(w, r, id)
			})(w, r)
			return
		}

		if strings.HasSuffix(path, "/resolve") {
			if r.Method != http.MethodPost {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			c.Product.Resolve(w, r, controller.ExtractProductID(r.URL.Path, "/resolve"))
			return
		}

		id := controller.ExtractProductID(r.URL.Path, "")
		switch r.Method {
		case http.MethodGet:
			c.Product.Get(w, r, id)
		case http.MethodPut:
			c.Auth.AdminOnly(func(w http.ResponseWriter, r *http.Request) {
				c.Product.Update(w, r, id)
			})(w, r)
		case http.MethodDelete:
			c.Auth.AdminOnly(func(w http.ResponseWriter, r *http.Request) {
				c.Product.Delete(w, r, id)
			})(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Order collection - create for buyers, full list for admins
	http.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			c.Auth.Protect(c.Order.Create)(w, r)
		} else if r.Method == http.MethodGet {
			c.Auth.AdminOnly(c.Order.List)(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	http.HandleFunc("/api/orders/myorders", c.Auth.Protect(c.Order.MyOrders))

	// Order by id plus payment and dispatch actions
	http.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/orders/")

		if strings.HasSuffix(path, "/pay") {
			if r.Method != http.MethodPost && r.Method != http.MethodPut {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			id := strings.Trim(strings.TrimSuffix(path, "/pay"), "/")
			c.Auth.Protect(func(w http.ResponseWriter, r *http.Request) {
				c.Order.Pay(w, r, id)
			})(w, r)
			return
		}

		if strings.HasSuffix(path, "/dispatch") {
			if r.Method != http.MethodPost && r.Method != http.MethodPut {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			id := strings.Trim(strings.TrimSuffix(path, "/dispatch"), "/")
			c.Auth.AdminOnly(func(w http.ResponseWriter, r *http.Request) {
				c.Order.Dispatch(w, r, id)
			})(w, r)
			return
		}

		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.Trim(path, "/")
		c.Auth.Protect(func(w http.ResponseWriter, r *http.Request) {
			c.Order.Get(w, r, id)
		})(w, r)
	})

	// Authentication and accounts
	http.HandleFunc("/api/users/login", c.User.Login)

	http.HandleFunc("/api/users/profile", c.Auth.Protect(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			c.User.GetProfile(w, r)
		} else if r.Method == http.MethodPut {
			c.User.UpdateProfile(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	http.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			c.User.Register(w, r)
		} else if r.Method == http.MethodGet {
			c.Auth.AdminOnly(c.User.List)(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Account management by id (admin)
	http.HandleFunc("/api/users/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/users/"), "/")
		switch r.Method {
		case http.MethodGet:
			c.Auth.AdminOnly(func(w http.ResponseWriter, r *http.Request) {
				c.User.Get(w, r, id)
			})(w, r)
		case http.MethodPut:
			c.Auth.AdminOnly(func(w http.ResponseWriter, r *http.Request) {
				c.User.Update(w, r, id)
			})(w, r)
		case http.MethodDelete:
			c.Auth.AdminOnly(func(w http.ResponseWriter, r *http.Request) {
				c.User.Delete(w, r, id)
			})(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Image upload and delivery
	http.HandleFunc("/api/upload", c.Auth.AdminOnly(c.Upload.Upload))
	http.HandleFunc("/api/images/", c.Upload.GetImage)

	// Printable catalog
	http.HandleFunc("/admin/catalog/render", c.Catalog.Render)
	http.HandleFunc("/api/admin/catalog/export", c.Auth.AdminOnly(c.Catalog.Export))
}
