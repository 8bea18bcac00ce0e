package main

// General API documentation for swaggo. Regenerate internal/apidocs with
// `swag init -g cmd/profanityd/docs.go -o internal/apidocs`.
//
// @title           profanityd API
// @version         1.0
// @description     Multi-model Tagalog profanity classification service.
//
// @contact.name   profanityd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
