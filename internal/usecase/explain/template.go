package explain

import (
	"regexp"
	"strings"

	"github.com/pathlight/careermatch/internal/domain"
)

const maxQuoteWords = 8

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// relevantQuote pulls the opening phrase of the first real sentence so the
// explanation can echo the user's own words. Returns "" when the text is
// too short to quote meaningfully.
func relevantQuote(text string) string {
	if len(text) < 10 {
		return ""
	}

	var first string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if len(strings.TrimSpace(s)) > 5 {
			first = strings.TrimSpace(s)
			break
		}
	}
	if first == "" {
		return ""
	}

	words := strings.Fields(first)
	if len(words) > maxQuoteWords {
		words = words[:maxQuoteWords]
	}
	quote := strings.Join(words, " ")
	if len(quote) <= 15 {
		return ""
	}
	return quote
}

func matched(domains []domain.Domain, d domain.Domain) bool {
	for _, m := range domains {
		if m == d {
			return true
		}
	}
	return false
}

// insightRule attaches a career-reality paragraph to a title keyword set.
type insightRule struct {
	match func(t string) bool
	text  string
}

func contains(t, sub string) bool { return strings.Contains(t, sub) }

func containsAny(t string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(t, s) {
			return true
		}
	}
	return false
}

// insightRules is evaluated in order; the first match wins. More specific
// titles sit above the broader keyword they contain (project manager before
// manager, data analyst before analyst).
var insightRules = []insightRule{
	{func(t string) bool { return containsAny(t, "software", "developer", "programmer") },
		"This field is growing rapidly with excellent job prospects. You'll need to stay current with evolving technologies and be comfortable with continuous learning. Expect to spend significant time debugging code and collaborating with teams."},
	{func(t string) bool { return containsAny(t, "data scientist", "data analyst") },
		"This role combines analytical thinking with business impact. You'll work with large datasets to uncover insights. Strong programming and statistics skills are essential, and you'll often need to explain complex findings to non-technical stakeholders."},
	{func(t string) bool { return containsAny(t, "physician", "doctor", "hospitalist", "surgeon") },
		"This is a demanding but deeply rewarding career requiring extensive medical education (typically 11+ years including residency). You'll work long hours, make critical decisions under pressure, and directly impact patients' lives. The emotional and intellectual challenges are significant."},
	{func(t string) bool { return containsAny(t, "nurse", "nursing") },
		"This hands-on healthcare role requires strong interpersonal skills and resilience. You'll work closely with patients during vulnerable moments. The work can be physically and emotionally demanding, with shift work common, but offers deep job satisfaction."},
	{func(t string) bool { return containsAny(t, "teacher", "instructor", "educator", "professor") },
		"Teaching offers the chance to shape young minds and make lasting impact. Beyond classroom time, expect significant prep work, grading, and administrative duties. Patience and adaptability are crucial, as every student learns differently."},
	{func(t string) bool { return contains(t, "engineer") && !contains(t, "software") },
		"Engineering careers combine technical problem-solving with practical applications. You'll typically work on projects from concept to completion. Strong math and physics foundations are important, and you'll often collaborate across disciplines."},
	{func(t string) bool { return containsAny(t, "project manager", "program manager") },
		"Project management is about coordinating people, timelines, and resources. You'll need strong organizational and communication skills. Success means delivering results while navigating competing priorities and stakeholder expectations."},
	{func(t string) bool { return containsAny(t, "manager", "director", "executive") },
		"Leadership roles require balancing people management with strategic thinking. You'll make decisions affecting teams and budgets. Success depends on communication skills, emotional intelligence, and the ability to navigate organizational dynamics."},
	{func(t string) bool { return containsAny(t, "designer", "ux", "ui") },
		"Design careers blend creativity with user needs and business goals. You'll iterate based on feedback and data. Building a strong portfolio is essential, and you'll need to stay current with design trends and tools."},
	{func(t string) bool { return contains(t, "analyst") && !contains(t, "data") },
		"This analytical role involves examining information to support business decisions. You'll create reports, identify trends, and recommend actions. Strong communication skills are just as important as technical analysis abilities."},
	{func(t string) bool { return containsAny(t, "scientist", "researcher") },
		"Research careers focus on advancing knowledge through systematic investigation. Academic paths typically require a PhD. Expect to write extensively, compete for grants, and work on long-term projects with uncertain outcomes."},
	{func(t string) bool { return containsAny(t, "accountant", "auditor") },
		"This detail-oriented profession requires precision and understanding of financial regulations. While work is often predictable, busy seasons (like tax time) can be intense. Professional certifications like CPA significantly boost career prospects."},
	{func(t string) bool { return containsAny(t, "marketing", "advertis") },
		"Marketing blends creativity with data-driven strategy. You'll need to understand consumer behavior and measure campaign effectiveness. The field evolves quickly with digital channels, requiring continuous learning."},
	{func(t string) bool { return contains(t, "sales") },
		"Sales careers are relationship-driven and results-oriented. Income often includes commission, creating earning potential but also variability. Resilience is crucial: you'll face rejection regularly and need strong interpersonal skills."},
	{func(t string) bool { return containsAny(t, "counselor", "therapist", "psychologist", "social worker") },
		"This helping profession requires deep empathy and strong boundaries. You'll support people through challenging situations, which can be emotionally taxing. Most roles require specific licensure and ongoing supervision/training."},
	{func(t string) bool { return containsAny(t, "lawyer", "attorney", "legal") },
		"Legal careers demand strong analytical and communication skills. Law school and bar exams are rigorous. While portrayed as glamorous, much of the work involves extensive reading, writing, and attention to detail. Hours can be long, especially early in your career."},
	{func(t string) bool { return containsAny(t, "writer", "author", "journalist") },
		"Writing professionally requires discipline and thick skin for criticism. Income can be unstable, especially freelance. Success comes from finding your unique voice, meeting deadlines, and constantly improving your craft."},
	{func(t string) bool { return containsAny(t, "entrepreneur", "founder") },
		"Entrepreneurship offers autonomy but comes with significant risk and uncertainty. You'll wear many hats, work long hours, and face frequent setbacks. Financial stability may take years, but the potential for impact and rewards is substantial."},
	{func(t string) bool { return containsAny(t, "human resources", "hr") },
		"HR balances employee advocacy with business needs. You'll handle confidential matters and navigate interpersonal conflicts. The role requires discretion, empathy, and understanding of employment law."},
	{func(t string) bool { return containsAny(t, "financial", "finance") },
		"Finance roles combine analytical skills with business acumen. You'll work with numbers and models to inform decisions. Professional certifications (CFA, CFP) often boost advancement. The field can be high-pressure, especially in investment banking."},
}

const defaultInsight = "This career offers opportunities to grow your expertise over time. Research typical career progression, required education, and work-life balance in this field to ensure it aligns with your long-term goals."

// templateExplanation builds the local explanation: an opening scaled to
// match quality, one sentence per matched domain quoting the user's own
// answer where possible, and a career-reality paragraph from the insight
// table.
func templateExplanation(req Request) string {
	var b strings.Builder

	switch {
	case len(req.Domains) >= 3:
		b.WriteString("This is an excellent match for you! ")
	case len(req.Domains) == 2:
		b.WriteString("This career aligns well with your profile. ")
	default:
		b.WriteString("This role could be a good fit. ")
	}

	if matched(req.Domains, domain.Skills) {
		if q := relevantQuote(req.Answers.Skills); q != "" {
			b.WriteString("You mentioned that you " + strings.ToLower(q) +
				", which is exactly the kind of mindset needed in " + req.Title + ". ")
		} else {
			b.WriteString("Your natural abilities align with the core competencies required for " +
				req.Title + ". ")
		}
	}

	if matched(req.Domains, domain.Tasks) {
		if q := relevantQuote(req.Answers.Tasks); q != "" {
			b.WriteString("The work you described, " + strings.ToLower(q) +
				", closely mirrors the daily responsibilities in this role. ")
		} else {
			b.WriteString("The type of work you're drawn to matches what professionals in this field do regularly. ")
		}
	}

	if matched(req.Domains, domain.Knowledge) {
		if q := relevantQuote(req.Answers.Knowledge); q != "" {
			b.WriteString("Your interest in " + strings.ToLower(q) +
				" provides a strong foundation for this career. ")
		} else {
			b.WriteString("Your educational interests are directly relevant to this profession. ")
		}
	}

	if matched(req.Domains, domain.Occ) {
		b.WriteString("The work environment in this field matches your preferred style. ")
	}

	t := strings.ToLower(req.Title)
	for _, rule := range insightRules {
		if rule.match(t) {
			b.WriteString(rule.text)
			return b.String()
		}
	}
	b.WriteString(defaultInsight)
	return b.String()
}
