package game

import "fmt"

// Mundial is the original edition: the sticker-trading business in the run-up
// to the World Cup. Wins pay a multiplier drawn from [2.5, 4.0); the
// leaderboard keeps full history.
var Mundial = Variant{
	Name:     "mundial",
	Title:    "El Dilema del Emprendedor: La Carrera por el Mundial",
	Tagline:  "¿Tenés pasta de emprendedor?",
	Currency: "$",

	StartingMoney: 1000,
	Goal:          2000,
	FloorAmount:   200,

	Multiplier: MultiplierRange{Min: 2.5, Max: 4.0},

	RequireEmail: true,
	Retention:    0,
	AllowClear:   true,
	StorageKey:   "figuritas-mundial-leaderboard",

	Steps: [StepCount]Step{
		{
			Title:    "Decisión 1: Tu Inversión Inicial",
			Subtitle: "¿Qué estrategia de compra elegís?",
			Scenario: "Tenés $1000 para arrancar tu emprendimiento de figuritas del Mundial. ¿Cómo invertís tu plata?",
			Options: [StepOptions]Option{
				{ID: "A", Title: "Paquetes Comunes", Description: "Figuritas regulares. Casi seguro que recuperás la inversión", Investment: 150, WinChance: 90, Risk: LowRisk},
				{ID: "B", Title: "Mix Equilibrado", Description: "Mitad comunes, mitad especiales. Riesgo moderado", Investment: 250, WinChance: 65, Risk: MediumRisk},
				{ID: "C", Title: "Figuritas Raras", Description: "¡A por la dorada de Messi! Pocas chances, pero si sale...", Investment: 350, WinChance: 25, Risk: HighRisk},
			},
		},
		{
			Title:    "Decisión 2: Estrategia de Venta",
			Subtitle: "¿Dónde vendés tus figuritas?",
			Scenario: "Ya tenés tu stock de figuritas. Ahora decidí dónde y cómo las vas a vender:",
			Options: [StepOptions]Option{
				{ID: "A", Title: "En el Barrio", Description: "Venta directa a vecinos y conocidos. Seguro pero limitado", Investment: 100, WinChance: 85, Risk: LowRisk},
				{ID: "B", Title: "En la Escuela", Description: "Punto estratégico con muchos clientes potenciales", Investment: 200, WinChance: 60, Risk: MediumRisk},
				{ID: "C", Title: "Online y Redes", Description: "Instagram, TikTok, MercadoLibre. Alcance máximo", Investment: 300, WinChance: 35, Risk: HighRisk},
			},
		},
		{
			Title:    "Decisión 3: Expansión del Negocio",
			Subtitle: "¿Cómo hacés crecer tu emprendimiento?",
			Scenario: "Tu negocio de figuritas va bien. Es hora de expandir. ¿Cuál es tu próximo paso?",
			Options: [StepOptions]Option{
				{ID: "A", Title: "Más Figuritas", Description: "Seguir con lo que funciona. Comprar más álbumes del Mundial", Investment: 200, WinChance: 80, Risk: LowRisk},
				{ID: "B", Title: "Otros Coleccionables", Description: "Cartas de Pokémon, Yu-Gi-Oh, etc. Diversificar", Investment: 350, WinChance: 55, Risk: MediumRisk},
				{ID: "C", Title: "Franquicia con Amigos", Description: "Crear una red de vendedores. Riesgo alto, ganancia épica", Investment: 500, WinChance: 30, Risk: HighRisk},
			},
		},
	},

	Tiers: []Tier{
		{Threshold: 2000, Label: "¡Crack total!", Message: "Tomaste riesgos calculados y te la jugaste con inteligencia. Sos un estratega de alto impacto."},
		{Threshold: 1600, Label: "¡Muy bien jugado!", Message: "Tenés mente de emprendedor. Con un poco más de data y análisis vas a ser imparable."},
		{Threshold: 1200, Label: "Buen trabajo", Message: "Jugaste conservador pero efectivo. Los datos te hubieran ayudado a ganar más."},
		{Threshold: 1000, Label: "Empate técnico", Message: "Mantuviste tu plata inicial. No está mal, pero podés arriesgar un poco más la próxima."},
		{Label: "A seguir intentando", Message: "Esta vez no salió, ¡pero así se aprende! En los negocios siempre hay una próxima oportunidad."},
	},
}

// Kiosco is the school-kiosk edition: smaller amounts, fixed payout tables,
// a top-10 board.
var Kiosco = Variant{
	Name:     "kiosco",
	Title:    "El Dilema del Emprendedor: El Kiosco de la Escuela",
	Tagline:  "¿Podés convertir el recreo en un negocio?",
	Currency: "$",

	StartingMoney: 500,
	Goal:          1200,
	FloorAmount:   120,

	RequireEmail: true,
	Retention:    10,
	AllowClear:   true,
	StorageKey:   "kiosco-escolar-leaderboard",

	Steps: [StepCount]Step{
		{
			Title:    "Decisión 1: Tu Primer Stock",
			Subtitle: "¿Qué comprás para vender en el recreo?",
			Scenario: "Tenés $500 ahorrados para armar tu kiosco escolar. ¿En qué los invertís?",
			Options: [StepOptions]Option{
				{ID: "A", Title: "Caramelos Sueltos", Description: "Baratos y salen siempre. Ganancia chica pero segura", Investment: 75, WinChance: 88, Risk: LowRisk, FixedPayout: 190},
				{ID: "B", Title: "Alfajores", Description: "El clásico del recreo. Margen y riesgo moderados", Investment: 120, WinChance: 60, Risk: MediumRisk, FixedPayout: 340},
				{ID: "C", Title: "Importados", Description: "Golosinas que nadie más tiene. Si pegan, la rompés", Investment: 180, WinChance: 28, Risk: HighRisk, FixedPayout: 600},
			},
		},
		{
			Title:    "Decisión 2: Punto de Venta",
			Subtitle: "¿Dónde armás el puesto?",
			Scenario: "El stock está listo. Ahora elegí dónde vender durante el recreo:",
			Options: [StepOptions]Option{
				{ID: "A", Title: "En Tu Curso", Description: "Clientes conocidos, cero competencia. Alcance limitado", Investment: 60, WinChance: 85, Risk: LowRisk, FixedPayout: 150},
				{ID: "B", Title: "En el Patio", Description: "Toda la escuela pasa por ahí, pero no sos el único", Investment: 120, WinChance: 57, Risk: MediumRisk, FixedPayout: 330},
				{ID: "C", Title: "A la Salida", Description: "Padres incluidos. Mucho público, mucha competencia", Investment: 200, WinChance: 30, Risk: HighRisk, FixedPayout: 640},
			},
		},
		{
			Title:    "Decisión 3: Reinvertir las Ganancias",
			Subtitle: "¿Cómo hacés crecer el kiosco?",
			Scenario: "El kiosco funciona. ¿Cuál es tu jugada para crecer?",
			Options: [StepOptions]Option{
				{ID: "A", Title: "Más de lo Mismo", Description: "Reponer lo que mejor se vende. Sin sorpresas", Investment: 100, WinChance: 80, Risk: LowRisk, FixedPayout: 260},
				{ID: "B", Title: "Bebidas Frías", Description: "Nueva categoría, nueva clientela. Requiere heladerita", Investment: 180, WinChance: 55, Risk: MediumRisk, FixedPayout: 520},
				{ID: "C", Title: "Socio en Otra Escuela", Description: "Duplicar la operación con un amigo de confianza", Investment: 300, WinChance: 25, Risk: HighRisk, FixedPayout: 1000},
			},
		},
	},

	Tiers: []Tier{
		{Threshold: 1200, Label: "Rey del Recreo", Message: "Llegaste a la meta. Administraste el riesgo como un profesional."},
		{Threshold: 800, Label: "Kiosquero Serio", Message: "Buen crecimiento. Con un poco más de audacia llegabas a la meta."},
		{Threshold: 500, Label: "Empate Técnico", Message: "Terminaste con lo que empezaste. El negocio te debe una."},
		{Label: "Recreo Difícil", Message: "Se perdió plata, pero se ganó experiencia. La próxima sale mejor."},
	},
}

// Feria is the food-fair edition: the biggest amounts, fixed payouts, no
// email capture and no leaderboard clearing.
var Feria = Variant{
	Name:     "feria",
	Title:    "El Dilema del Emprendedor: Sabores de Feria",
	Tagline:  "Tu puesto de comida contra el mundo",
	Currency: "$",

	StartingMoney: 2000,
	Goal:          4500,
	FloorAmount:   450,

	RequireEmail: false,
	Retention:    10,
	AllowClear:   false,
	StorageKey:   "feria-sabores-leaderboard",

	Steps: [StepCount]Step{
		{
			Title:    "Decisión 1: El Menú",
			Subtitle: "¿Qué vas a cocinar?",
			Scenario: "Tenés $2000 para montar tu puesto en la feria del barrio. ¿Qué menú preparás?",
			Options: [StepOptions]Option{
				{ID: "A", Title: "Choripán Clásico", Description: "Nunca falla. Margen conocido, demanda asegurada", Investment: 300, WinChance: 90, Risk: LowRisk, FixedPayout: 750},
				{ID: "B", Title: "Hamburguesas Gourmet", Description: "Más elaboradas, más caras, más margen", Investment: 500, WinChance: 65, Risk: MediumRisk, FixedPayout: 1400},
				{ID: "C", Title: "Cocina de Autor", Description: "Platos que nadie vio en una feria. Todo o nada", Investment: 700, WinChance: 25, Risk: HighRisk, FixedPayout: 2800},
			},
		},
		{
			Title:    "Decisión 2: La Ubicación",
			Subtitle: "¿Dónde ponés el puesto?",
			Scenario: "El menú está definido. Ahora hay que elegir ubicación en la feria:",
			Options: [StepOptions]Option{
				{ID: "A", Title: "Cerca de Casa", Description: "Feria chica, clientela fija, alquiler barato", Investment: 250, WinChance: 85, Risk: LowRisk, FixedPayout: 650},
				{ID: "B", Title: "Feria del Centro", Description: "Mucho tránsito y competencia pareja", Investment: 400, WinChance: 60, Risk: MediumRisk, FixedPayout: 1100},
				{ID: "C", Title: "Festival Gastronómico", Description: "Entrada cara pero público masivo un solo fin de semana", Investment: 600, WinChance: 35, Risk: HighRisk, FixedPayout: 2300},
			},
		},
		{
			Title:    "Decisión 3: La Expansión",
			Subtitle: "¿Cómo sigue el negocio?",
			Scenario: "El puesto anduvo. ¿Cuál es el próximo paso para crecer?",
			Options: [StepOptions]Option{
				{ID: "A", Title: "Segundo Puesto", Description: "Repetir la fórmula en otra feria conocida", Investment: 400, WinChance: 80, Risk: LowRisk, FixedPayout: 1000},
				{ID: "B", Title: "Food Truck", Description: "Movilidad total. Inversión fuerte en equipamiento", Investment: 700, WinChance: 55, Risk: MediumRisk, FixedPayout: 1900},
				{ID: "C", Title: "Local a la Calle", Description: "Dejar la feria y apostar a un restaurante propio", Investment: 1000, WinChance: 30, Risk: HighRisk, FixedPayout: 3800},
			},
		},
	},

	Tiers: []Tier{
		{Threshold: 4500, Label: "Chef Emprendedor", Message: "Meta cumplida. Tu puesto es la envidia de toda la feria."},
		{Threshold: 3500, Label: "Cocina que Rinde", Message: "Muy buen resultado. Te faltó un golpe de suerte para la meta."},
		{Threshold: 2500, Label: "Puesto Rentable", Message: "Creciste con prudencia. La feria ya te conoce."},
		{Threshold: 2000, Label: "Empate Técnico", Message: "Ni ganancia ni pérdida. La clientela todavía no te descubrió."},
		{Label: "Temporada Floja", Message: "Esta feria no fue la tuya. Los grandes chefs también quemaron platos."},
	},
}

// Variants lists the built-in editions in menu order.
var Variants = []Variant{Mundial, Kiosco, Feria}

// VariantByName looks up a built-in variant.
func VariantByName(name string) (Variant, error) {
	for _, v := range Variants {
		if v.Name == name {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("unknown variant: %q", name)
}
