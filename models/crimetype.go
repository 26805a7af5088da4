package models

// Crime categories used across the portal. A category determines which
// investigative unit is responsible for complaints of that kind.
const (
	CategoryCommunication = "Communication & Social Media Crimes"
	CategoryFinancial     = "Financial & Economic Crimes"
	CategoryDataPrivacy   = "Data & Privacy Crimes"
	CategoryMalware       = "Malware & System Attacks"
	CategoryExploitation  = "Harmful Content & Exploitation"
	CategoryGovernment    = "Government & Terrorism Crimes"
)

// Investigative units
const (
	UnitCyberCrimeCell   = "Cyber Crime Investigation Cell"
	UnitEconomicOffenses = "Economic Offenses Wing"
	UnitCyberSecurity    = "Cyber Security Division"
	UnitSpecialInvest    = "Special Investigation Team"
	UnitAntiTerrorism    = "Anti-Terrorism Unit"
)

// CrimeTypeMapping maps one crime-type enum value to its display name,
// category and the unit responsible for it
type CrimeTypeMapping struct {
	Name            string `json:"name"`
	DisplayName     string `json:"displayName"`
	Category        string `json:"category"`
	RecommendedUnit string `json:"recommendedUnit"`
}

// CrimeTypeTable is the immutable reference table for complaint
// classification, loaded once at process start. Order matters only for
// presentation; lookups never depend on it.
var CrimeTypeTable = []CrimeTypeMapping{
	{"PHISHING", "Phishing", CategoryCommunication, UnitCyberCrimeCell},
	{"SOCIAL_ENGINEERING", "Social Engineering", CategoryCommunication, UnitCyberCrimeCell},
	{"CYBERBULLYING", "Cyberbullying", CategoryCommunication, UnitCyberCrimeCell},
	{"ONLINE_HARASSMENT", "Online Harassment", CategoryCommunication, UnitCyberCrimeCell},
	{"IMPERSONATION", "Online Impersonation", CategoryCommunication, UnitCyberCrimeCell},
	{"ONLINE_FRAUD", "Online Fraud", CategoryFinancial, UnitEconomicOffenses},
	{"INVESTMENT_SCAM", "Investment Scam", CategoryFinancial, UnitEconomicOffenses},
	{"CREDIT_CARD_FRAUD", "Credit Card Fraud", CategoryFinancial, UnitEconomicOffenses},
	{"ONLINE_GAMBLING", "Illegal Online Gambling", CategoryFinancial, UnitEconomicOffenses},
	{"IDENTITY_THEFT", "Identity Theft", CategoryDataPrivacy, UnitCyberSecurity},
	{"DATA_BREACH", "Data Breach", CategoryDataPrivacy, UnitCyberSecurity},
	{"UNAUTHORIZED_ACCESS", "Unauthorized Access", CategoryDataPrivacy, UnitCyberSecurity},
	{"HACKING", "Hacking", CategoryMalware, UnitCyberSecurity},
	{"RANSOMWARE", "Ransomware", CategoryMalware, UnitCyberSecurity},
	{"MALWARE_DISTRIBUTION", "Malware Distribution", CategoryMalware, UnitCyberSecurity},
	{"DENIAL_OF_SERVICE", "Denial of Service Attack", CategoryMalware, UnitCyberSecurity},
	{"CHILD_EXPLOITATION", "Child Exploitation", CategoryExploitation, UnitSpecialInvest},
	{"SEXTORTION", "Sextortion", CategoryExploitation, UnitSpecialInvest},
	{"ILLEGAL_CONTENT", "Illegal Content Distribution", CategoryExploitation, UnitSpecialInvest},
	{"CYBERTERRORISM", "Cyberterrorism", CategoryGovernment, UnitAntiTerrorism},
	{"GOVERNMENT_SYSTEM_ATTACK", "Attack on Government Systems", CategoryGovernment, UnitAntiTerrorism},
}
