// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of ORM tags; every model here converts to and from
// its domain type with ToDomain/FromDomain.
//
// Files:
// - base.go: identity, version and tenant columns shared by every table
// - identity.go: users and their roles
// - partner.go: customers
// - finance.go: invoices, payments, revenues, accounts, categories, currencies
package models
