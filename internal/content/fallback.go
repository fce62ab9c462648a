package content

// FallbackLang is the language of the built-in content.
const FallbackLang = "es"

var (
	fallbackBio = `<p>Soy profesor y científico, Catedrático de Universidad en el área de Ciencias de la Computación e Inteligencia Artificial. Mi trabajo se ha centrado en el modelado biológico, con resultados en IA bioinspirada y Creatividad Artificial.</p>` +
		`<p>Entre mis proyectos destaca por impacto <a href="https://en.wikipedia.org/wiki/Melomics" target="_blank">Melomics</a>, que en 2012 diseñó un ordenador compositor, cuyas obras fueron interpretadas por la Orquesta Sinfónica de Londres.</p>` +
		`<p>En una línea más hacktivista, he contribuido a tomar conciencia sobre la necesidad de alfabetizar digitalmente en edades tempranas con el proyecto Toolbox (ahora <a href="https://codeok.academy/es/" target="_blank">CodeOK</a>).</p>` +
		`<p>Entretanto, dedico parte de mi tiempo a divulgar sobre las oportunidades y los riesgos de la IA, con las <a href="https://fjvico.github.io/cartasdealias/" target="_blank">Cartas de Alias</a>.</p>`

	fallbackTeaching = `Como <b>docente</b>, desde mi incorporación al departamento de Lenguajes y Ciencias de la Computación en 1996, he impartido <i>Teoría de autómatas y lenguajes formales</i>. ` +
		`Dividida en Teoría de lenguajes formales y Teoría de la Calculabilidad, recorre los principales conceptos de la Infomática Teórica, desde la gramática generativa propuesta por Noam Chomsky, hasta modelos matemáticos para representar funciones. ` +
		`Estos formalismos se utilizan para extraer conclusiones sobre la estructura y propiedades de los lenguajes formales, así como del conjunto de las funciones calculables. ` +
		`Es una asignatura clave para entender los fundamentos de los lenguajes de programación, en aspectos sintácticos y semánticos, así como las limitaciones de los ordenadores.`

	fallbackResearch = `Como <b>investigador</b>, desde que inicié la tesis doctoral en 1992, he desarrollado líneas científicas en Inteligecia Artificial y Creatividad Artificial. ` +
		`Siempre desde un enfoque bioinspirado, incorporando conocimiento de sistemas biológicos (cerebro, evolución, desarrollo embriológico o comportamiento colectivo). ` +
		`Los resultados en <i>investigación básica</i> se han recogido en nueve tesis doctorales. ` +
		`En <i>investigación aplicada</i> también he realizado transferencia de resultados al sector empresarial, en más de 40 proyectos como investigador principal, con financiación pública y privada.`
)

// Fallback returns the built-in Spanish content with every field present,
// so applying it overwrites every element on the page.
func Fallback() Content {
	return Content{
		Header: &Header{
			Title:    Set("Francisco J. Vico"),
			Subtitle: Set("«intento cosas»"),
		},
		Nav: &Nav{
			Bio:      Set("Biografía"),
			Academic: Set("Académico"),
			Writer:   Set("Escritor"),
		},
		Biography: &Biography{
			Title:   Set("Biografía"),
			Content: Set(fallbackBio),
		},
		Academic: &Academic{
			Title:       Set("Académico"),
			Paragraph1:  Set(fallbackTeaching),
			Paragraph2:  Set(fallbackResearch),
			OrcidDesc:   Set("Publicaciones y patentes"),
			OrcidBtn:    Set("Acceder a ORCID"),
			ScholarDesc: Set("Métricas de impacto"),
			ScholarBtn:  Set("Ver métricas"),
		},
		Writer: &Writer{
			Title:       Set("Escritor"),
			BookTitle:   Set("Cartas de Alias"),
			Description: Set("Alias, una IA con cargo de conciencia, escribe cartas a la humanidad."),
			YearLabel:   Set("Año de publicación:"),
			BookBtn:     Set("Visitar página del libro"),
		},
		Footer: &Footer{
			Name: Set("Francisco Vico"),
			Dept: Set("Dpto. Lenguajes y Ciencias de la Computación"),
			Uni:  Set("Universidad de Málaga"),
		},
	}
}
