package game

// Built-in decks. Black cards are fill-in-the-blank prompts, white cards are
// the answers players submit. Card ids are indexes into these slices, so
// entries must only ever be appended.

var blackTexts = []string{
	"My therapist says my real problem is ____.",
	"The secret ingredient in grandma's stew was always ____.",
	"Next on the local news: area man arrested for ____.",
	"I can't sleep without ____.",
	"The company retreat was ruined by ____.",
	"Scientists have finally discovered the cause of ____.",
	"My dating profile just says ____.",
	"The museum's newest exhibit: a thousand years of ____.",
	"Honestly, the wedding was fine until ____.",
	"What's that smell? ____.",
	"My New Year's resolution is to cut back on ____.",
	"The school banned ____ again this year.",
	"In my defense, nobody told me about ____.",
	"The haunted house was just a regular house with ____.",
	"This meeting could have been ____.",
	"My autobiography will be titled '____'.",
	"The last thing I remember before the ambulance was ____.",
	"Step one of my five-year plan: ____.",
	"The landlord said the rent covers heating, water, and ____.",
	"I knew the road trip was doomed when we packed ____.",
	"The fortune teller looked at my palm and whispered '____'.",
	"Our startup disrupts the market for ____.",
	"The neighbors filed a complaint about ____.",
	"Nothing says romance like ____.",
	"The astronauts weren't prepared for ____.",
	"Every family reunion ends with ____.",
}

var whiteTexts = []string{
	"a suspicious amount of glitter",
	"aggressive interpretive dance",
	"the world's saddest trombone solo",
	"an emotional support raccoon",
	"forty unpaid parking tickets",
	"a lifetime supply of expired coupons",
	"whispering to houseplants",
	"the neighbor's lawn gnome collection",
	"an extremely confident pigeon",
	"three toddlers in a trench coat",
	"decaf coffee, served with contempt",
	"a PowerPoint about my feelings",
	"the wrong kind of mushrooms",
	"an unsolicited bagpipe performance",
	"a haunted vending machine",
	"my browser history",
	"a firm but loving handshake",
	"the office microwave smell",
	"an alarmingly detailed conspiracy board",
	"one single, perfect meatball",
	"a motivational poster of a cat",
	"the group chat at 3 a.m.",
	"an off-brand superhero",
	"my uncle's karaoke rendition of opera",
	"a spreadsheet of past mistakes",
	"industrial quantities of bubble wrap",
	"a very polite sword fight",
	"the last slice of pizza, claimed by force",
	"an invisible dog on a leash",
	"eight hours of accordion practice",
	"a tax write-off shaped like a boat",
	"the committee for naming committees",
	"a weather forecast that's just shrugging",
	"my imaginary friend's lawyer",
	"a trampoline in the break room",
	"artisanal tap water",
	"the fifth law of robotics",
	"a surprisingly heavy balloon",
	"grandpa's secret handshake society",
	"a librarian pushed too far",
	"the world championship of waiting in line",
	"an oil painting of my sandwich",
	"a GPS that only speaks in riddles",
	"the annual running of the interns",
	"a modest proposal, laminated",
	"seventeen crows with a shared agenda",
	"the sound a fax machine makes",
	"an apology written in skywriting",
	"a yoga pose named after a tax form",
	"the emergency kazoo",
	"a diploma from a cereal box",
	"the soft jazz of impending doom",
}
