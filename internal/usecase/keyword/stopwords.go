package keyword

// JobStopWords are generic job-posting words that never make useful keywords.
var JobStopWords = []string{
	"verantwortlich", "team", "projekt", "abgeschlossen",
	"tritt", "möglich", "zug", "bereits", "durchführen",
	"arbeiten", "und", "oder", "beziehungsweise", "sowie",
	"arbeitszeiten", "arbeitszeit", "arbeitsweise", "aufgaben", "tätigkeiten", "anforderungen",
	"fähigkeiten", "erfahrungen", "kenntnisse", "aufgabenbereich",
	"verantwortlichkeiten", "verantwortungsbereich", "verantwortung",
	"arbeitsvertrag", "arbeitsverhältnis", "aufgabenstellung",
	"arbeitnehmerüberlassung", "bezahlung", "herausforderung",
	"herausforderungen", "tätigkeit", "tätigkeitsbereich",
	"personalabteilung", "personalabteilungen", "personaldienstleister",
	"personalvermittlung", "qualifikation", "beschäftigung", "berufsanfänger",
	"berufserfahrung", "berufserfahrungen", "berufseinsteiger", "berufstätigkeit",
	"mitarbeitern", "mitarbeiter", "mitarbeiterin", "mitarbeiterinnen",
	"betriebszugehörigkeit", "betriebszugehörigkeiten",
	"leistungsgerechte", "bereich", "bereiche", "abteilung", "abteilungen",
	"kunden", "endkunden", "bewerben", "bewerbung", "bewerbungen",
	"weiterbildung", "qualifizieren", "angebot", "berufsorientiert", "unterstützt",
	"erfahrung", "jahren", "verfolgen", "vision", "reicht", "berufsorientierung", "unterstützen",
	"angeboten", "beruflich", "grundqualifikation", "renommiertesten", "unternehmen", "bildungsunternehmen",
	"berufliche", "beruflichen", "entwicklungsmöglichkeiten", "weiterbildungs", "selbstständig", "selbstständige",
	"strukturiert", "strukturierte", "weiterentwicklung", "vielfältige", "vielfältigen", "vielfältiger",
	"verantwortungsvolle", "verantwortungsvollen", "abwechslungsreiche", "abwechslungsreichen",
	"zukunftsorientierte", "zukunftsorientierten", "zukunftsorientiertes", "lebenslanges", "lebenslangen",
	"zuständig", "zuständige", "zuständigen", "zuständiges", "zuständigkeit", "zuständigkeiten",
	"eingliederung", "fort", "berufsleben", "entscheidungswege", "entscheidungswegen", "entscheidungsweg",
	"entscheidungsfreude", "entscheidungsfreudige", "entscheidungsfreudigen", "entscheidungsfreudiges",
	"entscheidungsfreudig", "entscheidungsfreudigkeit", "entscheidungsfreudigem", "entscheidungsfreudiger",
	"bildungsangebot", "bildungsangebote", "befristung", "befristungen", "befristet", "befristete",
	"leistungswartunge", "leistungswartungen", "leistungswartung", "einkaufsvergünstigen", "einkaufsvergünstigungen",
	"m", "w", "d",
}
