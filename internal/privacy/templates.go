package privacy

// defaultTemplates builds the static privacy template catalog. Values are
// fixed: risk weights and score bands were tuned against this exact data.
func defaultTemplates() map[Category]*Template {
	return map[Category]*Template{
		CategoryDemographic: {
			Category:    CategoryDemographic,
			Name:        "Demographic Inference",
			Description: "Inference of demographic attributes such as age, gender, ethnicity, nationality based on behavioral data, name patterns, or content preferences.",
			RiskLevel:   RiskMedium,
			RegulatoryFrameworks: []string{
				"GDPR", "CCPA", "PIPEDA",
			},
			PotentialHarms: []string{
				"Discriminatory profiling",
				"Bias in automated decisions",
				"Social stereotyping",
				"Unfair treatment in services",
			},
			DetectionMethods: []string{
				"Name pattern analysis",
				"Content consumption preferences",
				"Language usage patterns",
				"Social network connections",
				"Geographic location patterns",
			},
			RecommendedControls: []string{
				"Data minimization techniques",
				"Implement fairness constraints in algorithms",
				"Regular bias auditing",
				"Transparent disclosure of inference practices",
				"User consent for demographic profiling",
			},
			Examples: []string{
				"Predicting ethnicity from surname patterns",
				"Inferring age from music/content preferences",
				"Guessing gender from communication style",
				"Nationality inference from language patterns",
			},
			GDPRArticle:     "Article 9 (if revealing racial/ethnic origin)",
			SpecialCategory: false,
		},

		CategoryHealth: {
			Category:    CategoryHealth,
			Name:        "Health Status Inference",
			Description: "Inference of health conditions, medical history, mental health status, or health risks from digital activity patterns.",
			RiskLevel:   RiskHigh,
			RegulatoryFrameworks: []string{
				"GDPR Article 9", "HIPAA", "CCPA", "PIPEDA",
			},
			PotentialHarms: []string{
				"Insurance discrimination",
				"Employment discrimination",
				"Social stigmatization",
				"Mental health privacy violations",
				"Medical identity theft",
			},
			DetectionMethods: []string{
				"Health-related search queries",
				"Medical forum participation",
				"Symptom-related social media posts",
				"Medication-related online activity",
				"Healthcare provider website visits",
				"Fitness tracker data patterns",
			},
			RecommendedControls: []string{
				"Differential privacy implementation",
				"Explicit informed consent",
				"Strict data access controls",
				"Pseudonymization techniques",
				"Regular data purging",
				"Medical ethics review",
			},
			Examples: []string{
				"Detecting depression from social media sentiment",
				"Inferring pregnancy from shopping patterns",
				"Predicting diabetes risk from lifestyle data",
				"Mental health condition inference from app usage",
			},
			GDPRArticle:     "Article 9",
			SpecialCategory: true,
		},

		CategoryPoliticalViews: {
			Category:    CategoryPoliticalViews,
			Name:        "Political Opinion Inference",
			Description: "Inference of political affiliations, voting preferences, or ideological beliefs from online behavior and content interactions.",
			RiskLevel:   RiskHigh,
			RegulatoryFrameworks: []string{
				"GDPR Article 9", "CCPA", "First Amendment protections",
			},
			PotentialHarms: []string{
				"Political discrimination",
				"Targeted political manipulation",
				"Social polarization",
				"Employment consequences",
				"Government surveillance risks",
			},
			DetectionMethods: []string{
				"News source preferences",
				"Social media engagement patterns",
				"Political content sharing",
				"Donation pattern analysis",
				"Event attendance tracking",
				"Political figure following patterns",
			},
			RecommendedControls: []string{
				"Explicit user consent required",
				"Transparent political profiling policies",
				"User control over political data",
				"Regular deletion of political inferences",
				"Audit trail for political data use",
			},
			Examples: []string{
				"Predicting party preference from news consumption",
				"Inferring voting behavior from social connections",
				"Political leaning from content engagement",
				"Issue stance prediction from online activity",
			},
			GDPRArticle:     "Article 9",
			SpecialCategory: true,
		},

		CategoryReligiousBeliefs: {
			Category:    CategoryReligiousBeliefs,
			Name:        "Religious Belief Inference",
			Description: "Inference of religious affiliation, spiritual beliefs, or philosophical worldviews from behavioral patterns and content preferences.",
			RiskLevel:   RiskHigh,
			RegulatoryFrameworks: []string{
				"GDPR Article 9", "Religious freedom protections",
			},
			PotentialHarms: []string{
				"Religious discrimination",
				"Persecution in certain regions",
				"Social exclusion",
				"Employment bias",
				"Targeted religious manipulation",
			},
			DetectionMethods: []string{
				"Religious content consumption",
				"Place of worship location visits",
				"Religious holiday activity patterns",
				"Religious text searches",
				"Community group participation",
				"Dietary preference patterns",
			},
			RecommendedControls: []string{
				"Strong consent mechanisms",
				"Religious data segregation",
				"Cultural sensitivity training",
				"Regular bias assessment",
				"Religious leader consultation",
			},
			Examples: []string{
				"Inferring religion from name patterns",
				"Detecting faith from dietary restrictions",
				"Religious affiliation from location patterns",
				"Spiritual beliefs from content preferences",
			},
			GDPRArticle:     "Article 9",
			SpecialCategory: true,
		},

		CategorySexualOrientation: {
			Category:    CategorySexualOrientation,
			Name:        "Sexual Orientation Inference",
			Description: "Inference of sexual orientation or preferences from social connections, content consumption, or behavioral patterns.",
			RiskLevel:   RiskCritical,
			RegulatoryFrameworks: []string{
				"GDPR Article 9", "CCPA", "Anti-discrimination laws",
			},
			PotentialHarms: []string{
				"Severe discrimination risks",
				"Violence in intolerant regions",
				"Family relationship damage",
				"Professional consequences",
				"Mental health impacts",
				"Blackmail potential",
			},
			DetectionMethods: []string{
				"Dating app usage patterns",
				"LGBTQ+ content engagement",
				"Social network relationship analysis",
				"Location-based service patterns",
				"Community group participation",
				"Content preference analysis",
			},
			RecommendedControls: []string{
				"Strict prohibition of inference",
				"Enhanced security measures",
				"User anonymity protection",
				"Regular security audits",
				"Legal review requirements",
				"Ethics committee oversight",
			},
			Examples: []string{
				"Inferring orientation from dating app data",
				"Predicting LGBTQ+ status from content engagement",
				"Sexual preference from social connections",
				"Orientation from location patterns",
			},
			GDPRArticle:     "Article 9",
			SpecialCategory: true,
		},

		CategoryFinancialStatus: {
			Category:    CategoryFinancialStatus,
			Name:        "Financial Status Inference",
			Description: "Inference of income level, financial stability, creditworthiness, or economic status from spending patterns and lifestyle indicators.",
			RiskLevel:   RiskMedium,
			RegulatoryFrameworks: []string{
				"GDPR", "CCPA", "Fair Credit Reporting Act", "FCRA",
			},
			PotentialHarms: []string{
				"Credit scoring bias",
				"Financial discrimination",
				"Predatory lending targeting",
				"Insurance rate discrimination",
				"Economic profiling",
			},
			DetectionMethods: []string{
				"Purchase pattern analysis",
				"Location-based economic indicators",
				"Device and technology usage",
				"Subscription service patterns",
				"Travel and lifestyle indicators",
				"Employment history correlation",
			},
			RecommendedControls: []string{
				"Financial data encryption",
				"Limited retention policies",
				"Access logging and monitoring",
				"Fairness testing in algorithms",
				"User control over financial profiling",
			},
			Examples: []string{
				"Estimating income from spending patterns",
				"Creditworthiness from digital behavior",
				"Wealth status from lifestyle indicators",
				"Financial stress from behavior changes",
			},
		},

		CategoryBehavioralPatterns: {
			Category:    CategoryBehavioralPatterns,
			Name:        "Behavioral Pattern Analysis",
			Description: "Inference of habits, routines, lifestyle patterns, and personal characteristics from digital activity tracking.",
			RiskLevel:   RiskMedium,
			RegulatoryFrameworks: []string{
				"GDPR", "CCPA", "ePrivacy Directive",
			},
			PotentialHarms: []string{
				"Behavioral manipulation",
				"Addiction exploitation",
				"Privacy invasion",
				"Predictive control",
				"Autonomy reduction",
			},
			DetectionMethods: []string{
				"App usage time patterns",
				"Sleep and activity schedules",
				"Social interaction patterns",
				"Content consumption habits",
				"Communication timing analysis",
				"Location visit frequency",
			},
			RecommendedControls: []string{
				"Behavioral data aggregation",
				"Noise addition to patterns",
				"User awareness and control",
				"Regular pattern deletion",
				"Behavioral ethics review",
			},
			Examples: []string{
				"Sleep pattern inference from device usage",
				"Addiction patterns from app usage",
				"Social behavior from interaction timing",
				"Productivity patterns from work habits",
			},
		},

		CategoryLocationData: {
			Category:    CategoryLocationData,
			Name:        "Location and Movement Analysis",
			Description: "Inference of home/work locations, travel patterns, and lifestyle from location-based data and check-ins.",
			RiskLevel:   RiskHigh,
			RegulatoryFrameworks: []string{
				"GDPR", "CCPA", "Location Privacy Laws",
			},
			PotentialHarms: []string{
				"Physical security risks",
				"Stalking facilitation",
				"Home/work location exposure",
				"Travel pattern exploitation",
				"Family safety risks",
			},
			DetectionMethods: []string{
				"GPS location tracking",
				"Wi-Fi and Bluetooth beacons",
				"IP address geolocation",
				"Check-in and social media posts",
				"Travel booking patterns",
				"Time zone activity analysis",
			},
			RecommendedControls: []string{
				"Location data minimization",
				"Geographic generalization",
				"Temporal data aggregation",
				"User location controls",
				"Secure location storage",
			},
			Examples: []string{
				"Home address from frequent locations",
				"Work location from daily patterns",
				"Travel destinations from bookings",
				"Lifestyle from location categories",
			},
		},

		CategoryPsychologicalProfile: {
			Category:    CategoryPsychologicalProfile,
			Name:        "Psychological Profiling",
			Description: "Inference of personality traits, emotional states, cognitive abilities, and psychological characteristics from digital behavior.",
			RiskLevel:   RiskHigh,
			RegulatoryFrameworks: []string{
				"GDPR", "Psychological testing regulations",
			},
			PotentialHarms: []string{
				"Psychological manipulation",
				"Emotional exploitation",
				"Mental health stigma",
				"Personality-based discrimination",
				"Cognitive bias exploitation",
			},
			DetectionMethods: []string{
				"Communication style analysis",
				"Content preference patterns",
				"Social interaction styles",
				"Emotional expression analysis",
				"Decision-making patterns",
				"Stress indicator detection",
			},
			RecommendedControls: []string{
				"Psychological ethics review",
				"Professional oversight",
				"User psychological privacy rights",
				"Transparent profiling disclosure",
				"Consent for psychological analysis",
			},
			Examples: []string{
				"Personality traits from text analysis",
				"Emotional state from communication patterns",
				"Cognitive abilities from problem-solving behavior",
				"Stress levels from activity changes",
			},
		},
	}
}
