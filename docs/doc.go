// Package docs provides the OpenAPI documentation for the cardscan API.
//
// cardscan API
//
//	@title			cardscan API
//	@version		1.0
//	@description	Business card scanning service: upload a card image, get structured contact fields back.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jackzampolin/cardscan
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/cardscan/serve.go -o . --outputTypes go --parseInternal
