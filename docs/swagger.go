// Package docs Organization Directory API.
//
// Справочник организаций с CRUD для зданий, телефонов и дерева видов
// деятельности. Организации ищутся по названию, зданию, виду деятельности
// (включая вложенные) и гео-фильтру: радиус вокруг точки или прямоугольник.
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
//	Security:
//	- api_key:
//
//	SecurityDefinitions:
//	api_key:
//	     type: apiKey
//	     name: X-API-Key
//	     in: header
//
// swagger:meta
package docs
