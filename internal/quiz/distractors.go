package quiz

// Static distractor datasets used to pad option pools. Pulled from the house
// spec sheets; ingredient names are intentionally verbatim, typos included.

// ExtraIngredients pads the ingredient dropdown universe.
var ExtraIngredients = []string{
	"BSC Simple 1:1", "Buffalo Trace", "Bitter Truth Jerry Thomas Bitters", "Lime Juice",
	"Cranberry Juice Eager", "Lemon Mix", "Ketel One", "Dutch Barn Vodka",
	"Briottet Crème De Peche", "Mr Blacks Coffee", "Bacardi Carta Blanca", "Millers Gin",
	"Carpano Dry Vermouth", "Whole Milk", "Whipping Cream", "Oggs",
	"Demerara Sugar", "Orange Zest", "Pineapple Juice", "MK Dark Berries",
	"Goslings Black Seal Rum", "Mint Leaves", "Artisan Ginger Beer", "Caster Sugar", "Lemon Sq", "Sagatiba Pura", "Lime Sq",
	"Honey", "BSC Disco Grenadine", "BSC Orgeat", "Appleton Estate 8 Year", "Martini Rubino Vermouth", "Briottet Marasquin", "Campari", "Courvoisier VS",
	"Cointreau", "Tanqueray", "Briottet Crème De Cacao Brown", "Sipsmith Sloe Gin", "Briottet Crème d'Apricot", "La Fee Absinthe", "Peychaud Bitters",
	"Woodford Rye", "Briottet Violette", "Lemon Zest Discard", "Laphroaig", "Johnnie Walker Black", "Kaveri Ginger", "Luxardo Amaretto", "Lemon Zest",
	"Herno Old Tom Gin", "Soda Pm", "Benedictine", "Lillet Blanc", "Bacardi Coconut", "Midori", "Giffard Banane du Brésil", "BSC Passion Fruit", "Grapefruit Juice",
	"Appleton Signature Rum", "Grand Marnier", "Velvet Falernum Liqueur", "Baileys", "BSC Nogave", "Patron Silver", "Havana 7", "Coca Cola Bottle", "El Jimador Blanco", "Angostura Bitters",
	"Pisco ABA", "Orange Juice", "Wray & Nephew Overproof", "Galliano", "Orange Slice", "Cucumber", "Ginger Ale", "Lemonade", "Pimms No 1", "Jack Daniels Black Label", "BSC Raspberry", "Red Chili",
	"Coriander Sprigs", "Carpano Bianco", "Aperol", "Mezcal Verde", "Chartreuse Yellow", "Coke Zero", "Amaro Averna", "Chartreuse Green", "ODK Coconut", "Luxardo Cherries & Lemon Zest",
	"Woodford Reserve Rye", "Lime Cordial", "Alchemist Marmalade", "Briottet Crème De Mure", "Basil Leaves", "Briottet Cacao Blanc", "Briottet Menthe Green", "Jameson", "Hot Water", "Espresso",
	"Any Open Red Wine", "Moet Champagne", "Alchemist Prosecco", "Briottet Cassis (Blackcurrant)",
}

// ExtraQuantities is the full quantity dropdown universe.
var ExtraQuantities = []string{
	"1 Count", "2 Counts", "3 Counts", "4 Counts", "5 Counts", "6 Counts", "8 Counts", "12 Counts",
	"15 ml Jig", "25 ml Jig", "50 ml Jig", "1 Barspn", "2 Barspns", "1 Dash", "2 Dashes", "3 Dashes",
	"1 Unit", "2 Units", "3 Units", "8 Leaves", "1/2 Can", "6 Units", "Top", "0.25 Can", "10 Units", "2 Counts Top", "125 ml", "30 ml", "175 ml", "110 ml", "80 ml", "85 ml",
}

// ExtraGlassware pads the glass single-choice question.
var ExtraGlassware = []string{
	"Sexy Rocks", "Coupe", "Highball", "Nick and Nora", "Rocks", "Tall Highball", "Bremen Beer", "Tubo", "Amber Coffee Glass", "Wine Glass", "Chilled Flute",
}

// ExtraGarnishes pads the garnish single-choice question.
var ExtraGarnishes = []string{
	"Orange Zest", "Lime Sq", "Lemon/Lime/Grapefruit Zest or Olive", "None", "Orange Sq & Cherry", "Small Mint Sprig", "Lemon Zest", "Lime Wheel", "Mint Sprig, Lime Sq, Cherry",
	"Orange Zest & Cherry", "Lemon Zest & Sugar Rim", "Grapefruit Zest", "Cinnamon and Nutmeg Dust", "Luxardo Cherries", "Flamed Orange Zest", "Lemon Sq & Cherry", "Banana Leaf",
	"Lime Circle x2", "Grapefruit Sq", "3 Dashes Angostura Bitters", "Mint Sprig", "Whole Freeze Dried Raspberries", "Chili Stem", "Orange Sq", "Basil Leaf", "Cinnamon/Nutmeg & Hammered Spoon",
}

// ExtraMethods pads the method single-choice question.
var ExtraMethods = []string{
	"Stir & Strain", "Shake & Fine Strain", "Shake and Strain", "Build", "Build & Quick Stir", "Hard Shake and Strain",
	"Shake & Double Strain", "Muddle Shake & Pour", "Blend 3 cubes & Fine Strain", "Rinse / Stir & Strain", "Build Over Ice Ball", "Build and Churn",
	"Shake, Strain & Top", "Hard Shake & Fine Strain", "Build & Stir",
}

// ExtraIce pads the ice single-choice question.
var ExtraIce = []string{"Crushed", "Cubed", "Iceball", "None", "7 Cubes", "Dry Ice"}

// choicePool returns the static candidate list for a choice dimension.
func choicePool(t QuestionType) []string {
	switch t {
	case TypeGlass:
		return ExtraGlassware
	case TypeMethod:
		return ExtraMethods
	case TypeGarnish:
		return ExtraGarnishes
	case TypeIce:
		return ExtraIce
	}
	return nil
}
