package stoplist

// Determiners is the custom removal set applied on top of the French
// stop-word list: articles, contractions and possessives.
var Determiners = []string{
	"le", "la", "les", "un", "une", "des", "de", "du", "au", "aux", "en",
	"l", "d", "ce", "ces", "cet", "cette", "mon", "ton", "son", "ma", "ta",
	"sa", "mes", "tes", "ses", "nos", "vos", "leurs",
}

// French is the default French stop-word list, accent-folded.
var French = []string{
	"a", "afin", "ai", "aie", "aient", "ainsi", "alors", "apres", "as", "assez",
	"au", "aucun", "aucune", "aujourd", "aupres", "auquel", "aussi", "autant",
	"autre", "autres", "aux", "auxquelles", "auxquels", "avaient", "avais",
	"avait", "avant", "avec", "avez", "aviez", "avions", "avoir", "avons",
	"ayant", "beaucoup", "c", "ca", "car", "ce", "ceci", "cela", "celle",
	"celles", "celui", "cependant", "certain", "certaine", "certaines",
	"certains", "ces", "cet", "cette", "ceux", "chacun", "chacune", "chaque",
	"chez", "ci", "comme", "comment", "d", "dans", "de", "depuis", "des",
	"desquelles", "desquels", "dessous", "dessus", "deux", "devant", "doit",
	"donc", "dont", "du", "duquel", "durant", "elle", "elles", "en", "encore",
	"entre", "es", "est", "et", "etaient", "etais", "etait", "etant", "ete",
	"etes", "etiez", "etions", "etre", "eu", "eux", "fait", "faites", "fois",
	"font", "hors", "ici", "il", "ils", "j", "je", "jusqu", "jusque", "l",
	"la", "laquelle", "le", "lequel", "les", "lesquelles", "lesquels", "leur",
	"leurs", "lors", "lorsque", "lui", "m", "ma", "mais", "me", "meme",
	"memes", "mes", "moi", "moins", "mon", "n", "ne", "ni", "non", "nos",
	"notre", "nous", "on", "ont", "ou", "par", "parce", "parmi", "pas",
	"pendant", "peu", "peut", "plus", "plusieurs", "pour", "pourquoi",
	"puis", "quand", "que", "quel", "quelle", "quelles", "quels", "qui",
	"quoi", "s", "sa", "sans", "se", "selon", "ses", "si", "sien", "sienne",
	"soi", "soit", "sommes", "son", "sont", "sous", "suis", "sur", "t", "ta",
	"tandis", "te", "tes", "toi", "ton", "tous", "tout", "toute", "toutes",
	"tres", "tu", "un", "une", "unes", "uns", "vers", "via", "voici",
	"voila", "vos", "votre", "vous", "y",
}
