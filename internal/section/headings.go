package section

// ImportantHeadings introduce requirement and task sections of German job postings.
var ImportantHeadings = []string{
	"Anforderungen", "Anforderungsprofil", "Aufgaben warten auf Sie",
	"DAS BRINGST DU MIT", "DAS ERWARTET DICH", "Darum geht's",
	"Das bringen Sie mit", "Das bringst Du mit", "Das erwartet Dich", "Das erwartet Sie",
	"Das machst du als Systemadministrator", "Das sollte Dir Spaß machen",
	"Das werden Sie machen", "Deine Aufgaben", "Deine Mission:", "Der Job",
	"Diese Aufgaben können dich erwarten", "Diese Herausforderungen übernimmst du",
	"Erfahrungen im Bereich", "Hauptaufgaben", "IHR AUFGABENBEREICH",
	"Ihr Profil", "Ihre Aufgaben", "Kenntnisse im Bereich",
	"Mit diesen Skills begeisterst du uns", "Persönliche Kompetenzen",
	"Qualifikationen", "Qualitfikation", "Sie bringen mit",
	"Sie sind zuständig für", "Spannende Aufgaben", "Tätigkeiten",
	"Voraussetzungen", "Was Sie bei uns machen", "Was erwartet Sie",
	"Wir unterstützen", "Womit du uns überzeugst",
	"Zuständigkeiten", "aufgaben warten auf dich", "dein Aufgabenbereich",
	"dein Aufgabengebiet", "deine Aufgabengebiete", "dein Profil", "deine Position", "erwarten wir",
	"ihr aufgabengebiet", "ihre aufgabengebiete", "mitbringen müssen", "mitbringen solltest",
	"persönliche FähigkeitenAufgabenschwerpunkte", "sollten Sie mitbringen",
	"solltest du mitbringen", "verstehen Sie es", "was sie erwartet",
	"wir erwarten", "zeichnet dich aus", "Ihr Know-How", "Dein neuer Job",
	"unsere Anfroderungen", "Wer Sie sind", "Wünschenswert", "folgende Skills",
}

// UnimportantHeadings introduce benefits, contact and legal sections.
var UnimportantHeadings = []string{
	"Arbeitsort", "Attraktive Bedingungen", "bieten wir",
	"Bei uns inklusive", "Benefits", "Dafür steht",
	"Das dürfen Sie erwarten", "Das erwartet dich bei uns",
	"Das gibt es für Dich", "Datenschutzhinweis", "Deine Benefits",
	"Entdecke die fantastischen Benefits, die auf Dich warten",
	"Gute Gründe, um ins Team zu kommen", "Haben wir Ihr Interesse geweckt?",
	"Ihr Partner", "Ihre Bewerbung", "Kontakt", "Kontakt und Informationen",
	"Satte Rabatte", "Sie haben noch Fragen", "Standort", "Unser Angebot",
	"Vorteile", "Warum gerade wir", "Was wir Dir bieten",
	"Was wir Ihnen bieten können", "Weitere Hinweise", "Wir bieten",
	"Wir ihnen bieten", "von uns", "warum wir", "wissen solltest",
	"Über", "Interessiert?", "Warum zu", "Ihre Perspektiven",
	"wir garentieren", "Wir freuen uns",
}
