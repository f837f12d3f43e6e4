package main

type team struct {
	Name     string
	Strength int
}

// teams are seeded in this order; the schedule is generated from it.
var teams = []team{
	{Name: "Real Madrid", Strength: 92},
	{Name: "FC Barcelona", Strength: 90},
	{Name: "Atlético Madrid", Strength: 88},
	{Name: "Real Sociedad", Strength: 84},
	{Name: "Villarreal", Strength: 82},
	{Name: "Real Betis", Strength: 81},
	{Name: "Athletic Club", Strength: 83},
	{Name: "Sevilla FC", Strength: 80},
	{Name: "Osasuna", Strength: 78},
	{Name: "Girona FC", Strength: 85},
	{Name: "Rayo Vallecano", Strength: 76},
	{Name: "Celta de Vigo", Strength: 77},
	{Name: "Valencia CF", Strength: 79},
	{Name: "Getafe CF", Strength: 76},
	{Name: "RCD Mallorca", Strength: 75},
	{Name: "UD Las Palmas", Strength: 74},
	{Name: "Deportivo Alavés", Strength: 73},
	{Name: "Granada CF", Strength: 70},
	{Name: "Cádiz CF", Strength: 71},
	{Name: "UD Almería", Strength: 69},
}

var squads = map[string][]string{
	"Real Madrid": {
		"Thibaut Courtois", "Dani Carvajal", "Eder Militao", "Antonio Rudiger", "Ferland Mendy",
		"Federico Valverde", "Aurelien Tchouameni", "Jude Bellingham", "Rodrygo", "Vinicius Jr", "Kylian Mbappe",
		"David Alaba", "Eduardo Camavinga", "Luka Modric", "Arda Guler", "Endrick", "Brahim Diaz",
	},
	"FC Barcelona": {
		"Marc-Andre ter Stegen", "Jules Kounde", "Ronald Araujo", "Pau Cubarsi", "Alejandro Balde", "Marc Casado",
		"Pedri", "Dani Olmo", "Lamine Yamal", "Robert Lewandowski", "Raphinha", "Gavi", "Frenkie de Jong",
		"Fermin Lopez", "Ferran Torres", "Wojciech Szczesny",
	},
	"Atlético Madrid": {
		"Jan Oblak", "Nahuel Molina", "Robin Le Normand", "Jose Maria Gimenez", "Reinildo Mandava", "Koke",
		"Conor Gallagher", "Rodrigo De Paul", "Antoine Griezmann", "Julian Alvarez", "Alexander Sorloth",
		"Samuel Lino", "Marcos Llorente", "Angel Correa", "Clement Lenglet",
	},
	"Real Sociedad": {
		"Alex Remiro", "Jon Aramburu", "Igor Zubeldia", "Nayef Aguerd", "Javi Lopez", "Martin Zubimendi",
		"Luka Sucic", "Sergio Gomez", "Takefusa Kubo", "Mikel Oyarzabal", "Orri Oskarsson", "Brais Mendez",
		"Sheraldo Becker", "Ander Barrenetxea",
	},
	"Athletic Club": {
		"Unai Simon", "Oscar de Marcos", "Dani Vivian", "Aitor Paredes", "Yuri Berchiche",
		"Inigo Ruiz de Galarreta", "Benat Prados", "Oihan Sancet", "Iñaki Williams", "Gorka Guruzeta",
		"Nico Williams", "Alvaro Djalo", "Alex Berenguer", "Unai Gomez",
	},
	"Girona FC": {
		"Paulo Gazzaniga", "Alejandro Frances", "David Lopez", "Daley Blind", "Miguel Gutierrez", "Oriol Romeu",
		"Yangel Herrera", "Ivan Martin", "Viktor Tsygankov", "Abel Ruiz", "Bryan Gil", "Cristhian Stuani",
		"Yaser Asprilla", "Arnaut Danjuma",
	},
	"Real Betis": {
		"Rui Silva", "Hector Bellerin", "Diego Llorente", "Natan", "Romain Perraud", "Marc Roca", "Johnny Cardoso",
		"Pablo Fornals", "Giovani Lo Celso", "Ez Abde", "Vitor Roque", "Isco", "Chimy Avila", "Cedric Bakambu",
	},
	"Villarreal": {
		"Diego Conde", "Kiko Femenia", "Raul Albiol", "Logan Costa", "Sergi Cardona", "Santi Comesaña",
		"Dani Parejo", "Alex Baena", "Ilias Akhomach", "Ayoze Perez", "Thierno Barry", "Gerard Moreno",
		"Yeremy Pino", "Nicolas Pepe",
	},
	"Sevilla FC": {
		"Orjan Nyland", "Jose Angel Carmona", "Loic Bade", "Kike Salas", "Adria Pedrosa", "Nemanja Gudelj",
		"Albert Sambi Lokonga", "Saul Niguez", "Dodi Lukebakio", "Isaac Romero", "Chidera Ejuke",
		"Kelechi Iheanacho", "Jesus Navas", "Suso",
	},
	"Osasuna": {
		"Sergio Herrera", "Jesus Areso", "Alejandro Catena", "Enzo Boyomo", "Abel Bretones", "Lucas Torro",
		"Jon Moncayola", "Aimar Oroz", "Ruben Garcia", "Ante Budimir", "Bryan Zaragoza", "Moi Gomez",
		"Raul Garcia",
	},
	"Rayo Vallecano": {
		"Augusto Batalla", "Ivan Balliu", "Florian Lejeune", "Abdul Mumin", "Pep Chavarria", "Oscar Valentin",
		"Unai Lopez", "Jorge de Frutos", "Isi Palazon", "Sergio Camello", "Adri Embarba", "James Rodriguez",
		"Randy Nteka",
	},
	"Celta de Vigo": {
		"Vicente Guaita", "Oscar Mingueza", "Carl Starfelt", "Marcos Alonso", "Hugo Alvarez", "Fran Beltran",
		"Ilaix Moriba", "Iago Aspas", "Borja Iglesias", "Williot Swedberg", "Anastasios Douvikas",
		"Jonathan Bamba",
	},
	"Valencia CF": {
		"Giorgi Mamardashvili", "Thierry Correia", "Cristhian Mosquera", "Cesar Tarrega", "Jose Gaya", "Pepelu",
		"Javi Guerra", "Diego Lopez", "Andre Almeida", "Hugo Duro", "Luis Rioja", "Rafa Mir", "Dani Gomez",
	},
	"Getafe CF": {
		"David Soria", "Juan Iglesias", "Djene Dakonam", "Omar Alderete", "Diego Rico", "Mauro Arambarri",
		"Luis Milla", "Christantus Uche", "Carles Perez", "Bertug Yildirim", "Alex Sola", "Borja Mayoral",
	},
	"RCD Mallorca": {
		"Dominik Greif", "Pablo Maffeo", "Martin Valjent", "Antonio Raillo", "Johan Mojica", "Samu Costa",
		"Sergi Darder", "Dani Rodriguez", "Robert Navarro", "Vedat Muriqi", "Takuma Asano", "Cyle Larin",
	},
	"UD Las Palmas": {
		"Jasper Cillessen", "Viti Rozada", "Alex Suarez", "Scott McKenna", "Alex Muñoz", "Kirian Rodriguez",
		"Javi Muñoz", "Alberto Moleiro", "Sandro Ramirez", "Oli McBurnie", "Fabio Silva", "Adnan Januzaj",
	},
	"Deportivo Alavés": {
		"Antonio Sivera", "Nahuel Tenaglia", "Abdel Abqar", "Aleksandar Sedlar", "Manu Sanchez", "Ander Guevara",
		"Antonio Blanco", "Jon Guridi", "Carlos Vicente", "Kike Garcia", "Toni Martinez", "Stoichkov",
	},
	"Granada CF": {
		"Luca Zidane", "Ricard Sanchez", "Miguel Rubio", "Ignasi Miquel", "Carlos Neva", "Martin Hongla",
		"Sergio Ruiz", "Gonzalo Villar", "Myrto Uzuni", "Lucas Boye", "Giorgi Tsitaishvili", "Reinier",
	},
	"Cádiz CF": {
		"David Gil", "Iza Carcelen", "Fali", "Victor Chust", "Jose Matos", "Ruben Alcaraz", "Gonzalo Escalante",
		"Brian Ocampo", "Chris Ramos", "Roger Marti", "Javi Ontiveros",
	},
	"UD Almería": {
		"Luis Maximiano", "Marc Pubill", "Chumi", "Kaiky", "Alex Centelles", "Lucas Robertone", "Dion Lopy",
		"Nico Melamed", "Sergio Arribas", "Luis Suarez", "Leo Baptistao",
	},
}

// fallbackSquad fills teams that have no listed players.
var fallbackSquad = []string{"Goalkeeper", "Right Back", "Centre Back", "Left Back", "Defensive Midfielder", "Central Midfielder", "Right Winger", "Left Winger", "Striker", "Captain", "Academy Prospect"}
