package shop

// SeedProducts is the starter catalog installed when a store comes up empty.
var SeedProducts = []Product{
	{Title: "Classic Tee", Description: "Soft cotton tee for everyday wear.", Price: 59900, Image: "images/shirt.jpg", Stock: 25},
	{Title: "Comfy Hoodie", Description: "Cozy fleece hoodie with kangaroo pocket.", Price: 199900, Image: "images/hoodie.jpg", Stock: 15},
	{Title: "Denim Jacket", Description: "Iconic denim, slightly oversized fit.", Price: 299900, Image: "images/jacket.jpg", Stock: 10},
	{Title: "Running Shoes", Description: "Lightweight trainers for daily runs.", Price: 399900, Image: "images/shoes.jpg", Stock: 18},
}
