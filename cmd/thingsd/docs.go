package main

// General API documentation for swaggo. Run `swag init -g cmd/thingsd/docs.go` to regenerate.
//
// @title           thingsd API
// @version         1.0
// @description     Accepts things and reports why a body could not be decoded.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
