package catalog

import "github.com/aretw0/wayfarer/pkg/domain"

// Default returns the built-in catalog.
func Default() *Catalog {
	c, _ := New(defaultPlaces)
	return c
}

var defaultPlaces = []domain.Place{
	{City: "Andaman", PlaceName: "Radhanagar Beach", Category: "Beaches 🏖️", Description: "Famous for its sunset views and soft white sand on Havelock Island.", Image: "https://upload.wikimedia.org/wikipedia/commons/4/4f/Radhanagar_Beach.jpg", Rating: 4.9},
	{City: "Andaman", PlaceName: "Elephant Beach", Category: "Beaches 🏖️", Description: "Adventure hotspot known for snorkeling and coral reefs.", Image: "https://upload.wikimedia.org/wikipedia/commons/1/1e/Elephant_Beach_Havelock.jpg", Rating: 4.7},
	{City: "Andaman", PlaceName: "Cellular Jail", Category: "Historical 🏰", Description: "Iconic colonial prison and Indian freedom struggle site.", Image: "https://upload.wikimedia.org/wikipedia/commons/9/9f/Cellular_Jail_Port_Blair.jpg", Rating: 4.8},
	{City: "Andaman", PlaceName: "Ross Island", Category: "Islands 🏝️", Description: "Historical island with British ruins and peacocks.", Image: "https://upload.wikimedia.org/wikipedia/commons/d/d2/Ross_Island_Andaman.jpg", Rating: 4.8},
	{City: "Andaman", PlaceName: "Mount Harriet National Park", Category: "Nature & Wildlife 🌿", Description: "Scenic mountain trails and lush green landscapes.", Image: "https://upload.wikimedia.org/wikipedia/commons/8/8f/Mount_Harriet_Andaman.jpg", Rating: 4.6},

	{City: "Manali", PlaceName: "Rohtang Pass", Category: "Mountains & Valleys 🏔", Description: "High mountain pass offering panoramic views and snow adventures.", Image: "https://upload.wikimedia.org/wikipedia/commons/a/a2/Kullu_Valley_from_Rohtang_Pass%2C_India.jpg", Rating: 4.8},
	{City: "Manali", PlaceName: "Solang Valley", Category: "Adventure Sports 🧗‍♂️", Description: "Adventure and skiing hub surrounded by majestic peaks.", Image: "https://upload.wikimedia.org/wikipedia/commons/f/f1/Solang_Valley_%2CManali%2C_Himachal_Pardes%2C_India.JPG", Rating: 4.7},
	{City: "Manali", PlaceName: "Hadimba Temple", Category: "Historical & Cultural 🏰", Description: "Ancient wooden temple dedicated to Goddess Hadimba Devi.", Image: "https://upload.wikimedia.org/wikipedia/commons/e/e9/Devi_Hidimba_Temple_Manali.jpg", Rating: 4.7},
	{City: "Manali", PlaceName: "Café 1947", Category: "Cafes & Nightlife ☕", Description: "Iconic riverside café in Old Manali serving Italian cuisine.", Image: "https://media-cdn.tripadvisor.com/media/photo-s/12/f9/c3/83/cafe-1947.jpg", Rating: 4.6},
	{City: "Manali", PlaceName: "Mall Road", Category: "Local Markets & Shopping 🛍", Description: "Main shopping street for woollens, souvenirs, and local food.", Image: "https://upload.wikimedia.org/wikipedia/commons/5/5f/Mall_Road%2C_Manali.jpg", Rating: 4.6},

	{City: "Chikmagalur", PlaceName: "Mullayanagiri", Category: "Mountains & Hills ⛰️", Description: "Highest peak in Karnataka at 1,930m with stunning panoramic views.", Image: "https://upload.wikimedia.org/wikipedia/commons/thumb/c/cb/Mullayanagiri_Peak.jpg/1280px-Mullayanagiri_Peak.jpg", Rating: 4.9},
	{City: "Chikmagalur", PlaceName: "Baba Budangiri", Category: "Mountains & Hills ⛰️", Description: "Mountain range with caves and shrine, known for scenic beauty.", Image: "https://upload.wikimedia.org/wikipedia/commons/thumb/a/a1/Bababudangiri_Hills_CKM.jpg/1024px-Bababudangiri_Hills_CKM.jpg", Rating: 4.7},
	{City: "Chikmagalur", PlaceName: "Hirekolale Lake", Category: "Lakes & Water Bodies 🏞️", Description: "Picturesque man-made lake with stunning mountain backdrop.", Image: "https://upload.wikimedia.org/wikipedia/commons/thumb/9/90/Hirekolale_Lake_CKM.jpg/1280px-Hirekolale_Lake_CKM.jpg", Rating: 4.6},
	{City: "Chikmagalur", PlaceName: "Belavadi Veeranarayana Temple", Category: "Historical & Heritage 🏰", Description: "Hoysala architectural marvel with intricate stone carvings.", Image: "https://upload.wikimedia.org/wikipedia/commons/thumb/6/67/Veera_Narayana_temple_at_Belavadi.jpg/1280px-Veera_Narayana_temple_at_Belavadi.jpg", Rating: 4.6},
	{City: "Chikmagalur", PlaceName: "Hebbe Falls", Category: "Adventure & Trekking 🥾", Description: "Spectacular waterfall accessible via jeep ride through coffee estates.", Image: "https://upload.wikimedia.org/wikipedia/commons/thumb/4/45/Hebbe_falls_kemmangundi.jpg/1024px-Hebbe_falls_kemmangundi.jpg", Rating: 4.7},
	{City: "Chikmagalur", PlaceName: "Coffee Museum", Category: "Coffee Culture & Plantations ☕", Description: "Interactive museum showcasing history and process of coffee.", Image: "https://upload.wikimedia.org/wikipedia/commons/thumb/a/a3/Coffee_Board_Museum_Chikmagalur.jpg/1024px-Coffee_Board_Museum_Chikmagalur.jpg", Rating: 4.5},
	{City: "Chikmagalur", PlaceName: "Belur Chennakeshava Temple", Category: "Historical & Heritage 🏰", Description: "Stunning 12th-century Hoysala temple known for intricate carvings.", Image: "https://upload.wikimedia.org/wikipedia/commons/thumb/e/e2/Chennakesava_Temple_at_Belur.jpg/1280px-Chennakesava_Temple_at_Belur.jpg", Rating: 4.7},

	{City: "Bihar", PlaceName: "Nalanda University Ruins", Category: "Heritage & Historical 🏯", Description: "Ancient Buddhist university and UNESCO World Heritage Site.", Image: "https://upload.wikimedia.org/wikipedia/commons/thumb/8/87/Nalanda_University_Ruins_Bihar.jpg/1280px-Nalanda_University_Ruins_Bihar.jpg", Rating: 4.8},
	{City: "Bihar", PlaceName: "Mahabodhi Temple, Bodh Gaya", Category: "Spiritual & Religious 🛕", Description: "UNESCO site where Lord Buddha attained enlightenment.", Image: "https://upload.wikimedia.org/wikipedia/commons/thumb/f/f4/Mahabodhi_Temple_Complex_in_Bodh_Gaya_004.jpg/1024px-Mahabodhi_Temple_Complex_in_Bodh_Gaya_004.jpg", Rating: 4.9},
	{City: "Bihar", PlaceName: "Valmiki Tiger Reserve", Category: "Nature & Wildlife 🌿", Description: "Bihar's only tiger reserve, home to tigers, leopards, and elephants.", Image: "https://upload.wikimedia.org/wikipedia/commons/thumb/8/84/Valmiki_National_Park_3.jpg/1024px-Valmiki_National_Park_3.jpg", Rating: 4.7},
	{City: "Bihar", PlaceName: "Litti Chokha Stalls, Patna", Category: "Food & Culture 🍲", Description: "Street-side delicacies representing the true flavor of Bihar.", Image: "https://images.pexels.com/photos/1640774/pexels-photo-1640774.jpeg", Rating: 4.7},
}
