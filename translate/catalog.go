package translate

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// French messages, keyed by their en-US format.
var french = map[string]string{
	"File not found: %v":                  "Fichier introuvable : %v",
	"address 0x%02x %v":                   "adresse 0x%02x %v",
	"line %d address 0x%02x %v":           "ligne %d adresse 0x%02x %v",
	"opcode 0x%02x %v":                    "instruction 0x%02x %v",
	"address 0x%03x out of range":         "adresse 0x%03x hors limites",
	"register %d out of range":            "registre %d hors limites",
	"label %v missing":                    "étiquette %v manquante",
	"line %d '%v' %v":                     "ligne %d '%v' %v",
	"'%v' is not a number":                "'%v' n'est pas un nombre",
	"'%v' does not fit in a byte":         "'%v' ne tient pas dans un octet",
	"'%v' is not a character":             "'%v' n'est pas un caractère",
	"$(%v) is not a valid expression":     "$(%v) n'est pas une expression valide",
	"macro %v line %v %v":                 "macro %v ligne %v %v",
	"'%v' is not an 8-bit binary literal": "'%v' n'est pas un littéral binaire de 8 bits",
}

func init() {
	for key, msg := range french {
		err := message.SetString(language.French, key, msg)
		if err != nil {
			panic(err)
		}
	}
}
