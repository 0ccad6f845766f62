// Package docs holds the OpenAPI document served at /swagger. Regenerate with `swag init -g cmd/api/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "parameters": [
                    {"type": "string", "description": "name/description substring", "name": "q", "in": "query"},
                    {"type": "string", "description": "category id", "name": "categoryId", "in": "query"},
                    {"type": "integer", "description": "page size (max 100)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "items to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/product.ListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create a product",
                "parameters": [
                    {"description": "product", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/product.CreateProductRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/product.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Get a product",
                "parameters": [{"type": "string", "description": "product id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/product.Product"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Partially update a product",
                "parameters": [
                    {"type": "string", "description": "product id", "name": "id", "in": "path", "required": true},
                    {"description": "fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/product.UpdateProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/product.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["products"],
                "summary": "Delete a product",
                "parameters": [{"type": "string", "description": "product id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/products/{id}/inventory": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Set product stock",
                "parameters": [
                    {"type": "string", "description": "product id", "name": "id", "in": "path", "required": true},
                    {"description": "new stock", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/product.UpdateInventoryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/product.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/category.Category"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Create a category",
                "parameters": [
                    {"description": "category", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/category.CategoryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/category.Category"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/categories/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Get a category",
                "parameters": [{"type": "string", "description": "category id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/category.Category"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Rename a category",
                "parameters": [
                    {"type": "string", "description": "category id", "name": "id", "in": "path", "required": true},
                    {"description": "new name", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/category.CategoryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/category.Category"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Fails with 409 while products still reference the category.",
                "tags": ["categories"],
                "summary": "Delete a category",
                "parameters": [{"type": "string", "description": "category id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/orders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List the caller's orders",
                "parameters": [
                    {"type": "integer", "description": "page size (max 100)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "items to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.ListResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Checks and reserves stock for every line, stores the shipping address and creates the order.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Place an order",
                "parameters": [
                    {"description": "order", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.CreateOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/order.Order"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the order with its shipping address and the current product documents.",
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Get an order",
                "parameters": [{"type": "string", "description": "order id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Detail"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/payments": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Pay an order",
                "parameters": [
                    {"description": "payment", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/payment.CreatePaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/payment.Payment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/payments/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Get a payment",
                "parameters": [{"type": "string", "description": "payment id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/payment.Payment"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        }
    },
    "definitions": {
        "httpx.HTTPError": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "not found"}}
        },
        "category.Category": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "category.CategoryRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string", "maxLength": 100, "example": "Headphones"}}
        },
        "product.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "string", "example": "199.90"},
                "image": {"type": "string"},
                "categoryId": {"type": "string"},
                "stock": {"type": "integer"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "product.ListResponse": {
            "type": "object",
            "properties": {
                "q": {"type": "string"},
                "categoryId": {"type": "string"},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/product.Product"}}
            }
        },
        "product.CreateProductRequest": {
            "type": "object",
            "required": ["name", "price"],
            "properties": {
                "name": {"type": "string", "maxLength": 200, "example": "Mechanical Keyboard"},
                "description": {"type": "string", "maxLength": 2000, "example": "RGB 60%"},
                "price": {"type": "string", "example": "199.90"},
                "image": {"type": "string", "example": "https://cdn.example.com/kb.png"},
                "categoryId": {"type": "string"},
                "stock": {"type": "integer", "minimum": 0, "example": 10}
            }
        },
        "product.UpdateProductRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 200},
                "description": {"type": "string", "maxLength": 2000},
                "price": {"type": "string"},
                "image": {"type": "string"},
                "categoryId": {"type": "string"},
                "stock": {"type": "integer", "minimum": 0}
            }
        },
        "product.UpdateInventoryRequest": {
            "type": "object",
            "required": ["stock"],
            "properties": {"stock": {"type": "integer", "minimum": 0, "example": 25}}
        },
        "order.ProductRef": {
            "type": "object",
            "properties": {"_id": {"type": "string"}, "id": {"type": "string"}}
        },
        "order.CreateOrderItem": {
            "type": "object",
            "required": ["quantity"],
            "properties": {
                "product": {"$ref": "#/definitions/order.ProductRef"},
                "quantity": {"type": "integer", "minimum": 1, "example": 2}
            }
        },
        "order.ShippingAddress": {
            "type": "object",
            "required": ["line_1", "city", "state", "zip_code", "phone"],
            "properties": {
                "line_1": {"type": "string", "example": "221B Baker Street"},
                "line_2": {"type": "string"},
                "city": {"type": "string", "example": "London"},
                "state": {"type": "string", "example": "Greater London"},
                "zip_code": {"type": "string", "example": "NW1 6XE"},
                "phone": {"type": "string", "example": "+44 20 7224 3688"}
            }
        },
        "order.CreateOrderRequest": {
            "type": "object",
            "required": ["items"],
            "properties": {
                "items": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/order.CreateOrderItem"}},
                "shippingAddress": {"$ref": "#/definitions/order.ShippingAddress"}
            }
        },
        "order.ProductSnapshot": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "string"},
                "image": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "order.Item": {
            "type": "object",
            "properties": {
                "product": {"$ref": "#/definitions/order.ProductSnapshot"},
                "quantity": {"type": "integer"}
            }
        },
        "order.Address": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "line_1": {"type": "string"},
                "line_2": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "zip_code": {"type": "string"},
                "phone": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "order.Order": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/order.Item"}},
                "addressId": {"type": "string"},
                "orderStatus": {"type": "string", "enum": ["PENDING", "CONFIRMED", "SHIPPED", "FULFILLED", "CANCELLED"]},
                "paymentStatus": {"type": "string", "enum": ["PENDING", "PAID"]},
                "total": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "order.ItemDetail": {
            "type": "object",
            "properties": {
                "product": {"$ref": "#/definitions/order.ProductSnapshot"},
                "quantity": {"type": "integer"},
                "currentProduct": {"$ref": "#/definitions/product.Product"}
            }
        },
        "order.Detail": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/order.ItemDetail"}},
                "addressId": {"type": "string"},
                "address": {"$ref": "#/definitions/order.Address"},
                "orderStatus": {"type": "string"},
                "paymentStatus": {"type": "string"},
                "total": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "order.ListResponse": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/order.Order"}}
            }
        },
        "payment.CreatePaymentRequest": {
            "type": "object",
            "required": ["orderId", "method"],
            "properties": {
                "orderId": {"type": "string"},
                "method": {"type": "string", "enum": ["card", "cash", "transfer"], "example": "card"}
            }
        },
        "payment.Payment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "orderId": {"type": "string"},
                "userId": {"type": "string"},
                "amount": {"type": "string"},
                "currency": {"type": "string"},
                "method": {"type": "string"},
                "status": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "storex API",
	Description:      "Catalog, checkout and payments for the storex storefront.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
