package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// forms maps a CLDR plural form to its text. plural.Other is required.
type forms map[plural.Form]string

func text(s string) forms { return forms{plural.Other: s} }

var catalogs = map[language.Tag]map[string]forms{
	language.BritishEnglish: {
		"general.invoices":              {plural.One: "Invoice", plural.Other: "Invoices"},
		"general.revenues":              {plural.One: "Revenue", plural.Other: "Revenues"},
		"general.customers":             {plural.One: "Customer", plural.Other: "Customers"},
		"customers.error.email":         text("This email has already been taken."),
		"messages.error.customer":       text("User not created! :name already uses this email address."),
		"messages.success.added":        text(":type added!"),
		"messages.success.updated":      text(":type updated!"),
		"messages.success.deleted":      text(":type deleted!"),
		"messages.success.duplicated":   text(":type duplicated!"),
		"messages.success.imported":     text(":type imported!"),
		"messages.success.enabled":      text(":type enabled!"),
		"messages.success.disabled":     text(":type disabled!"),
		"messages.warning.deleted":      text("You cannot delete :name because it has related :text."),
		"auth.password.current":         text("Password"),
		"auth.password.current_confirm": text("Password Confirmation"),
	},
	language.German: {
		"general.invoices":              {plural.One: "Rechnung", plural.Other: "Rechnungen"},
		"general.revenues":              {plural.One: "Einnahme", plural.Other: "Einnahmen"},
		"general.customers":             {plural.One: "Kunde", plural.Other: "Kunden"},
		"customers.error.email":         text("Diese E-Mail-Adresse ist bereits vergeben."),
		"messages.error.customer":       text("Benutzer nicht angelegt! :name verwendet diese E-Mail-Adresse bereits."),
		"messages.success.added":        text(":type hinzugefügt!"),
		"messages.success.updated":      text(":type aktualisiert!"),
		"messages.success.deleted":      text(":type gelöscht!"),
		"messages.success.duplicated":   text(":type dupliziert!"),
		"messages.success.imported":     text(":type importiert!"),
		"messages.success.enabled":      text(":type aktiviert!"),
		"messages.success.disabled":     text(":type deaktiviert!"),
		"messages.warning.deleted":      text(":name kann nicht gelöscht werden, da zugehörige :text existieren."),
		"auth.password.current":         text("Passwort"),
		"auth.password.current_confirm": text("Passwort bestätigen"),
	},
	language.Turkish: {
		"general.invoices":              {plural.Other: "Faturalar"},
		"general.revenues":              {plural.Other: "Gelirler"},
		"general.customers":             {plural.One: "Müşteri", plural.Other: "Müşteriler"},
		"customers.error.email":         text("Bu e-posta adresi zaten kullanılıyor."),
		"messages.success.added":        text(":type eklendi!"),
		"messages.success.updated":      text(":type güncellendi!"),
		"messages.success.deleted":      text(":type silindi!"),
		"messages.warning.deleted":      text(":name silinemez çünkü ilişkili :text mevcut."),
		"auth.password.current":         text("Şifre"),
		"auth.password.current_confirm": text("Şifre Onayı"),
	},
}
