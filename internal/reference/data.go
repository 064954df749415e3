package reference

import "github.com/recipelift/backend/internal/domain"

var foodCatalog = []string{
	// Produce
	"Apple", "Avocado", "Banana", "Basil", "Bell Pepper", "Red Bell Pepper", "Green Bell Pepper",
	"Blueberries", "Broccoli", "Brussels Sprouts", "Cabbage", "Carrot", "Cauliflower", "Celery",
	"Cherry Tomatoes", "Chili Pepper", "Jalapeno", "Cilantro", "Corn", "Cucumber", "Dill",
	"Eggplant", "Garlic", "Ginger", "Green Beans", "Green Onion", "Kale", "Leek", "Lemon",
	"Lettuce", "Lime", "Mango", "Mint", "Mushrooms", "Onion", "Red Onion", "Shallot", "Orange",
	"Parsley", "Peas", "Pineapple", "Potato", "Sweet Potato", "Pumpkin", "Raspberries",
	"Rosemary", "Spinach", "Strawberries", "Thyme", "Tomato", "Zucchini", "Oregano", "Sage",
	"Bay Leaf", "Chives", "Arugula", "Peach", "Pear", "Cranberries", "Raisins", "Dates",
	// Proteins
	"Bacon", "Beef", "Ground Beef", "Beef Steak", "Chicken", "Chicken Breast", "Boneless Chicken Breast",
	"Chicken Thighs", "Chicken Wings", "Ground Turkey", "Turkey", "Ham", "Lamb", "Pork", "Pork Chops",
	"Pork Tenderloin", "Sausage", "Salmon", "Shrimp", "Tuna", "Cod", "White Fish", "Tofu", "Eggs",
	"Egg Yolk", "Egg White", "Chickpeas", "Black Beans", "Kidney Beans", "Lentils",
	// Dairy
	"Butter", "Buttermilk", "Cheddar", "Cream Cheese", "Feta", "Goat Cheese", "Heavy Cream",
	"Milk", "Mozzarella", "Parmesan", "Ricotta", "Sour Cream", "Yogurt", "Greek Yogurt",
	"Whipped Cream", "Condensed Milk", "Coconut Milk", "Almond Milk",
	// Pantry
	"Flour", "Whole Wheat Flour", "Bread Flour", "Cornstarch", "Baking Powder", "Baking Soda",
	"Yeast", "Sugar", "Brown Sugar", "Powdered Sugar", "Honey", "Maple Syrup", "Molasses",
	"Salt", "Black Pepper", "Olive Oil", "Vegetable Oil", "Canola Oil", "Sesame Oil",
	"Coconut Oil", "Vinegar", "Balsamic Vinegar", "Apple Cider Vinegar", "Red Wine Vinegar",
	"Rice Vinegar", "Soy Sauce", "Fish Sauce", "Worcestershire Sauce", "Hot Sauce", "Ketchup",
	"Mustard", "Dijon Mustard", "Mayonnaise", "Tomato Paste", "Tomato Sauce", "Canned Tomatoes",
	"Broth", "Chicken Broth", "Beef Broth", "Vegetable Broth", "Stock", "Rice", "Brown Rice",
	"Pasta", "Spaghetti", "Penne", "Noodles", "Bread", "Breadcrumbs", "Panko", "Tortillas",
	"Oats", "Quinoa", "Couscous", "Peanut Butter", "Almonds", "Walnuts", "Pecans", "Peanuts",
	"Cashews", "Pine Nuts", "Sesame Seeds", "Chocolate", "Dark Chocolate", "Chocolate Chips",
	"Cocoa Powder", "Vanilla Extract", "Cinnamon", "Nutmeg", "Cumin", "Paprika",
	"Smoked Paprika", "Chili Powder", "Cayenne", "Turmeric", "Curry Powder", "Garam Masala",
	"Red Pepper Flakes", "Garlic Powder", "Onion Powder", "Italian Seasoning", "Cloves",
	"Cardamom", "Coriander", "Capers", "Olives", "Pesto", "Salsa", "Gelatin", "Water", "Ice",
	"Wine", "White Wine", "Red Wine", "Beer", "Coffee", "Tea", "Orange Juice", "Lemon Juice",
	"Lime Juice", "Coconut", "Shredded Coconut",
}

// ingredientAliases maps a cleaned lowercase phrase to its canonical display name.
var ingredientAliases = map[string]string{
	"garlic":                            "Garlic",
	"minced garlic":                     "Garlic",
	"crushed garlic":                    "Garlic",
	"garlic cloves":                     "Garlic",
	"garlic clove":                      "Garlic",
	"chicken breast":                    "Chicken Breast",
	"chicken breasts":                   "Chicken Breast",
	"boneless skinless chicken breast":  "Boneless Chicken Breast",
	"boneless skinless chicken breasts": "Boneless Chicken Breast",
	"boneless chicken breast":           "Boneless Chicken Breast",
	"chicken thigh":                     "Chicken Thighs",
	"chicken thighs":                    "Chicken Thighs",
	"all-purpose flour":                 "Flour",
	"all purpose flour":                 "Flour",
	"plain flour":                       "Flour",
	"granulated sugar":                  "Sugar",
	"white sugar":                       "Sugar",
	"caster sugar":                      "Sugar",
	"light brown sugar":                 "Brown Sugar",
	"dark brown sugar":                  "Brown Sugar",
	"packed brown sugar":                "Brown Sugar",
	"confectioners sugar":               "Powdered Sugar",
	"icing sugar":                       "Powdered Sugar",
	"unsalted butter":                   "Butter",
	"salted butter":                     "Butter",
	"extra virgin olive oil":            "Olive Oil",
	"extra-virgin olive oil":            "Olive Oil",
	"kosher salt":                       "Salt",
	"sea salt":                          "Salt",
	"table salt":                        "Salt",
	"salt and pepper":                   "Salt",
	"ground black pepper":               "Black Pepper",
	"freshly ground black pepper":       "Black Pepper",
	"egg":                               "Eggs",
	"eggs":                              "Eggs",
	"large egg":                         "Eggs",
	"large eggs":                        "Eggs",
	"egg yolks":                         "Egg Yolk",
	"egg whites":                        "Egg White",
	"chicken stock":                     "Chicken Broth",
	"beef stock":                        "Beef Broth",
	"vegetable stock":                   "Vegetable Broth",
	"yellow onion":                      "Onion",
	"white onion":                       "Onion",
	"onions":                            "Onion",
	"scallion":                          "Green Onion",
	"scallions":                         "Green Onion",
	"spring onions":                     "Green Onion",
	"green onions":                      "Green Onion",
	"coriander leaves":                  "Cilantro",
	"heavy whipping cream":              "Heavy Cream",
	"double cream":                      "Heavy Cream",
	"whole milk":                        "Milk",
	"parmesan cheese":                   "Parmesan",
	"parmigiano reggiano":               "Parmesan",
	"grated parmesan":                   "Parmesan",
	"cheddar cheese":                    "Cheddar",
	"sharp cheddar":                     "Cheddar",
	"mozzarella cheese":                 "Mozzarella",
	"minced beef":                       "Ground Beef",
	"beef mince":                        "Ground Beef",
	"bicarbonate of soda":               "Baking Soda",
	"pure vanilla extract":              "Vanilla Extract",
	"semi-sweet chocolate chips":        "Chocolate Chips",
	"semisweet chocolate chips":         "Chocolate Chips",
	"chocolate chip":                    "Chocolate Chips",
	"unsweetened cocoa powder":          "Cocoa Powder",
	"cocoa":                             "Cocoa Powder",
	"fresh lemon juice":                 "Lemon Juice",
	"fresh lime juice":                  "Lime Juice",
	"low sodium soy sauce":              "Soy Sauce",
	"diced tomatoes":                    "Canned Tomatoes",
	"crushed tomatoes":                  "Canned Tomatoes",
	"tomatoes":                          "Tomato",
	"cherry tomatoes":                   "Cherry Tomatoes",
	"garlic powder":                     "Garlic Powder",
	"carrots":                           "Carrot",
	"potatoes":                          "Potato",
	"russet potatoes":                   "Potato",
	"sweet potatoes":                    "Sweet Potato",
	"bell peppers":                      "Bell Pepper",
	"jalapenos":                         "Jalapeno",
	"jalapeño":                          "Jalapeno",
	"mushroom":                          "Mushrooms",
	"cremini mushrooms":                 "Mushrooms",
	"baby spinach":                      "Spinach",
	"fresh parsley":                     "Parsley",
	"fresh cilantro":                    "Cilantro",
	"fresh basil":                       "Basil",
	"rolled oats":                       "Oats",
	"old-fashioned oats":                "Oats",
	"plain yogurt":                      "Yogurt",
	"greek yoghurt":                     "Greek Yogurt",
	"panko breadcrumbs":                 "Panko",
	"bread crumbs":                      "Breadcrumbs",
	"canola":                            "Canola Oil",
	"shrimps":                           "Shrimp",
	"prawns":                            "Shrimp",
	"courgette":                         "Zucchini",
	"aubergine":                         "Eggplant",
	"chili flakes":                      "Red Pepper Flakes",
	"crushed red pepper":                "Red Pepper Flakes",
	"cayenne pepper":                    "Cayenne",
	"ground cinnamon":                   "Cinnamon",
	"ground cumin":                      "Cumin",
	"ground nutmeg":                     "Nutmeg",
	"corn starch":                       "Cornstarch",
	"active dry yeast":                  "Yeast",
	"instant yeast":                     "Yeast",
	"mayo":                              "Mayonnaise",
}

// measurementTerms are stripped as whole words from ingredient lines.
var measurementTerms = []string{
	"cups", "cup", "tablespoons", "tablespoon", "tbsp", "tbs", "teaspoons", "teaspoon", "tsp",
	"ounces", "ounce", "oz", "pounds", "pound", "lbs", "lb", "grams", "gram", "g", "kg", "ml", "l",
	"pinch", "dash", "cloves", "clove", "pieces", "piece", "slices", "slice", "cans", "can",
	"packages", "package", "bags", "bag", "boxes", "box", "about", "approximately", "roughly",
	"around", "to taste", "as needed", "optional",
}

var unitIndicators = []string{
	"cup", "cups", "tablespoon", "tablespoons", "tbsp", "tbs", "teaspoon", "teaspoons", "tsp",
	"ounce", "ounces", "oz", "pound", "pounds", "lb", "lbs", "gram", "grams", "g", "kg", "ml", "l",
	"liter", "liters", "litre", "pinch", "dash", "clove", "cloves", "can", "cans", "package",
	"stick", "sticks", "slice", "slices", "piece", "pieces", "handful", "bunch", "sprig", "sprigs",
	"quart", "pint", "jar", "head", "chopped", "diced", "minced", "sliced", "grated", "shredded",
	"peeled", "softened", "melted", "taste", "whole", "large", "medium", "small", "fresh", "ground",
}

var actionVerbs = []string{
	"add", "mix", "stir", "cook", "bake", "heat", "combine", "whisk", "pour", "place", "preheat",
	"boil", "simmer", "fry", "saute", "sauté", "chop", "slice", "dice", "season", "serve",
	"remove", "transfer", "drain", "blend", "beat", "fold", "spread", "roll", "cut", "cover",
	"let", "bring", "reduce", "roast", "grill", "toss", "sprinkle", "melt", "knead", "garnish",
	"refrigerate", "chill", "arrange", "top", "turn", "microwave", "cool", "whip", "marinate",
	"rinse", "pat", "line", "grease", "mash", "puree", "broil", "brown", "sear", "steam",
	"stuff", "drizzle", "squeeze", "wash", "peel", "mince", "shred", "crack", "divide", "repeat",
}

// stopWords are dropped before catalog matching.
var stopWords = []string{
	"a", "an", "the", "and", "or", "of", "in", "on", "at", "to", "for", "with", "by", "from",
	"is", "it", "as", "be", "into", "plus", "more", "if", "your", "such",
	"cup", "cups", "tbsp", "tsp", "oz", "lb", "lbs", "ml", "kg", "g", "gram", "grams",
	"ounce", "ounces", "pound", "pounds", "tablespoon", "tablespoons", "teaspoon", "teaspoons",
	"fresh", "freshly", "chopped", "minced", "diced", "sliced", "grated", "shredded", "crushed",
	"peeled", "finely", "roughly", "coarsely", "thinly", "large", "medium", "small", "divided",
	"softened", "melted", "room", "temperature", "packed", "taste", "needed", "optional",
	"about", "approximately", "cut", "pieces", "piece", "whole", "extra", "lightly", "beaten",
	"cold", "warm", "hot", "cooked", "uncooked", "drained", "rinsed", "trimmed", "halved",
	"quartered", "cubed", "inch", "inches", "each", "pinch", "dash", "can", "cans", "package",
}

var categoryAliases = map[string]domain.Category{
	"breakfast":       domain.CategoryBreakfast,
	"brunch":          domain.CategoryBreakfast,
	"starter":         domain.CategoryStarter,
	"starters":        domain.CategoryStarter,
	"appetizer":       domain.CategoryStarter,
	"appetizers":      domain.CategoryStarter,
	"appetiser":       domain.CategoryStarter,
	"snack":           domain.CategoryStarter,
	"snacks":          domain.CategoryStarter,
	"hors d'oeuvre":   domain.CategoryStarter,
	"main":            domain.CategoryMain,
	"mains":           domain.CategoryMain,
	"main course":     domain.CategoryMain,
	"main dish":       domain.CategoryMain,
	"entree":          domain.CategoryMain,
	"entrée":          domain.CategoryMain,
	"dinner":          domain.CategoryMain,
	"lunch":           domain.CategoryMain,
	"side":            domain.CategorySide,
	"sides":           domain.CategorySide,
	"side dish":       domain.CategorySide,
	"side dishes":     domain.CategorySide,
	"soup":            domain.CategorySoup,
	"soups":           domain.CategorySoup,
	"stew":            domain.CategorySoup,
	"soups and stews": domain.CategorySoup,
	"dessert":         domain.CategoryDessert,
	"desserts":        domain.CategoryDessert,
	"baking":          domain.CategoryDessert,
	"sweets":          domain.CategoryDessert,
	"drink":           domain.CategoryDrink,
	"drinks":          domain.CategoryDrink,
	"beverage":        domain.CategoryDrink,
	"beverages":       domain.CategoryDrink,
	"cocktail":        domain.CategoryDrink,
	"cocktails":       domain.CategoryDrink,
	"smoothie":        domain.CategoryDrink,
}

// nameKeywords is scanned in order; the first category with a hit wins.
var nameKeywords = []CategoryKeywords{
	{domain.CategoryBreakfast, []string{"breakfast", "brunch", "pancake", "waffle", "omelet", "omelette",
		"frittata", "french toast", "granola", "oatmeal", "porridge", "scrambled", "hash brown", "eggs benedict"}},
	{domain.CategoryDessert, []string{"dessert", "cake", "cookie", "brownie", "pie", "tart", "pudding",
		"ice cream", "cheesecake", "fudge", "cupcake", "mousse", "tiramisu", "sorbet", "cobbler",
		"crumble", "candy", "truffle", "macaron", "donut", "doughnut", "blondie", "custard"}},
	{domain.CategorySoup, []string{"soup", "stew", "chowder", "bisque", "broth", "gumbo", "ramen",
		"pho", "gazpacho", "minestrone", "chili"}},
	{domain.CategoryDrink, []string{"smoothie", "cocktail", "lemonade", "latte", "tea", "coffee",
		"punch", "margarita", "mojito", "milkshake", "juice", "sangria", "drink", "hot chocolate"}},
	{domain.CategoryStarter, []string{"appetizer", "starter", "dip", "bruschetta", "crostini",
		"spring roll", "wings", "nachos", "hummus", "deviled eggs", "bites", "guacamole", "canape"}},
	{domain.CategorySide, []string{"side", "salad", "coleslaw", "slaw", "mashed", "fries", "pilaf",
		"cornbread", "garlic bread", "gratin", "roasted vegetables", "roasted potatoes"}},
}

var ingredientSignals = []CategorySignal{
	{domain.CategoryBreakfast, map[string]int{"egg": 2, "bacon": 3, "maple syrup": 3, "oats": 2,
		"pancake mix": 3, "granola": 3, "yogurt": 1, "breakfast sausage": 3, "hash browns": 3}},
	{domain.CategoryDessert, map[string]int{"flour": 1, "sugar": 1, "butter": 1, "chocolate": 2,
		"cocoa": 3, "vanilla": 2, "powdered sugar": 2, "sprinkles": 3, "frosting": 3,
		"condensed milk": 3, "gelatin": 2}},
	{domain.CategorySoup, map[string]int{"broth": 4, "stock": 4, "bouillon": 4}},
	{domain.CategoryMain, map[string]int{"chicken": 2, "beef": 2, "pork": 2, "lamb": 2, "salmon": 2,
		"shrimp": 2, "tofu": 2, "turkey": 2, "steak": 2, "fish": 2, "sausage": 1, "pasta": 1, "rice": 1}},
	{domain.CategoryDrink, map[string]int{"vodka": 3, "rum": 3, "tequila": 3, "gin": 3, "ice": 1,
		"soda water": 2, "club soda": 2, "tonic": 2, "espresso": 2}},
}

var cuisineFamilies = map[string]domain.Category{
	"italian":  domain.CategoryMain,
	"french":   domain.CategoryMain,
	"american": domain.CategoryMain,
	"mexican":  domain.CategoryMain,
	"indian":   domain.CategoryMain,
	"thai":     domain.CategoryMain,
	"chinese":  domain.CategoryMain,
}

var advancedTechniques = []string{
	"sous vide", "flambé", "flambe", "temper", "confit", "braise", "deglaze", "fold", "proof",
	"knead", "reduce", "clarify", "blanch", "julienne", "brunoise", "chiffonade", "supreme",
}
