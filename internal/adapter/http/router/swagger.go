package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Accounts Payable API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Accounts Payable API",
    "version": "1.0.0",
    "description": "Ledger of payable obligations: CRUD, CSV bulk import, paid totals and the daily overdue batch."
  },
  "paths": {
    "/accounts": {
      "get": {
        "summary": "List accounts",
        "parameters": [
          {
            "name": "dueDate",
            "in": "query",
            "required": false,
            "schema": {"type": "string", "format": "date", "example": "2024-11-01"}
          },
          {
            "name": "description",
            "in": "query",
            "required": false,
            "schema": {"type": "string", "example": "Electricity"}
          },
          {
            "name": "page",
            "in": "query",
            "required": false,
            "schema": {"type": "integer", "minimum": 0, "default": 0}
          },
          {
            "name": "size",
            "in": "query",
            "required": false,
            "schema": {"type": "integer", "minimum": 1, "default": 20}
          }
        ],
        "responses": {
          "200": {"description": "Paginated accounts"},
          "400": {"description": "Validation error"},
          "500": {"description": "Server error"}
        }
      },
      "post": {
        "summary": "Create account",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {"$ref": "#/components/schemas/AccountRequest"}
            }
          }
        },
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts/{id}": {
      "get": {
        "summary": "Get account by id",
        "parameters": [{"$ref": "#/components/parameters/AccountID"}],
        "responses": {
          "200": {"description": "Account fetched"},
          "400": {"description": "Malformed id"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      },
      "put": {
        "summary": "Replace account",
        "parameters": [{"$ref": "#/components/parameters/AccountID"}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {"$ref": "#/components/schemas/AccountRequest"}
            }
          }
        },
        "responses": {
          "200": {"description": "Account updated"},
          "400": {"description": "Validation error"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      },
      "delete": {
        "summary": "Delete account",
        "parameters": [{"$ref": "#/components/parameters/AccountID"}],
        "responses": {
          "200": {"description": "Account deleted"},
          "400": {"description": "Malformed id"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts/{id}/status": {
      "patch": {
        "summary": "Update account status",
        "parameters": [
          {"$ref": "#/components/parameters/AccountID"},
          {
            "name": "status",
            "in": "query",
            "required": true,
            "schema": {"type": "string", "enum": ["PENDING", "PAID", "OVERDUE"]}
          }
        ],
        "responses": {
          "200": {"description": "Status updated"},
          "400": {"description": "Validation error"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts/total-paid": {
      "get": {
        "summary": "Sum paid accounts over a payment-date range",
        "parameters": [
          {
            "name": "startDate",
            "in": "query",
            "required": true,
            "schema": {"type": "string", "format": "date", "example": "2024-01-01"}
          },
          {
            "name": "endDate",
            "in": "query",
            "required": true,
            "schema": {"type": "string", "format": "date", "example": "2024-01-31"}
          }
        ],
        "responses": {
          "200": {"description": "Total paid amount"},
          "400": {"description": "Validation error"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts/import": {
      "post": {
        "summary": "Bulk import accounts from CSV",
        "requestBody": {
          "required": true,
          "content": {
            "multipart/form-data": {
              "schema": {
                "type": "object",
                "required": ["file"],
                "properties": {
                  "file": {"type": "string", "format": "binary"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Accounts imported"},
          "400": {"description": "Empty upload or malformed CSV"},
          "500": {"description": "Server error"}
        }
      }
    }
  },
  "components": {
    "parameters": {
      "AccountID": {
        "name": "id",
        "in": "path",
        "required": true,
        "schema": {"type": "string", "format": "uuid"}
      }
    },
    "schemas": {
      "AccountRequest": {
        "type": "object",
        "required": ["dueDate", "value", "description", "status"],
        "properties": {
          "dueDate": {"type": "string", "format": "date", "example": "2024-11-01"},
          "paymentDate": {"type": "string", "format": "date"},
          "value": {"type": "string", "example": "500.00"},
          "description": {"type": "string", "example": "Electricity"},
          "status": {"type": "string", "enum": ["PENDING", "PAID", "OVERDUE"]}
        }
      }
    },
    "securitySchemes": {
      "BasicAuth": {
        "type": "http",
        "scheme": "basic"
      }
    }
  }
}`
