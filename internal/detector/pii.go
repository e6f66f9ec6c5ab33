package detector

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"time"

	"github.com/moderalabs/modera/internal/api/entity"
	"github.com/moderalabs/modera/internal/domain"
)

// entityLabelMap translates the recognition service's raw labels to PII
// categories. Entities with labels outside this table are dropped silently.
var entityLabelMap = map[string]domain.PIICategory{
	"EMAIL_ADDRESS":   domain.PIIEmail,
	"PHONE_NUMBER":    domain.PIIPhone,
	"CREDIT_CARD":     domain.PIICreditCard,
	"SSN":             domain.PIISSN,
	"DATE_OF_BIRTH":   domain.PIIDateOfBirth,
	"DRIVERS_LICENSE": domain.PIIDriversLicense,
	"STREET":          domain.PIIStreet,
	"CITY":            domain.PIICity,
	"BUILDING":        domain.PIIBuilding,
	"ZIP_CODE":        domain.PIIZipCode,
	"GIVEN_NAME":      domain.PIIGivenName,
	"SURNAME":         domain.PIISurname,
	"USERNAME":        domain.PIIUsername,
	"PASSWORD":        domain.PIIPassword,
	"ACCOUNT_NUMBER":  domain.PIIAccountNumber,
	"ID_CARD":         domain.PIIIDCard,
	"TAX_NUMBER":      domain.PIITaxNumber,
}

// fallbackPatterns are the local matchers used when the recognition service
// is unavailable. They cover the disclosures most damaging to miss.
var fallbackPatterns = []struct {
	category domain.PIICategory
	re       *regexp.Regexp
}{
	{domain.PIIEmail, regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)},
	{domain.PIIPhone, regexp.MustCompile(`\+?\d{1,3}[\s.\-]?\(?\d{2,4}\)?[\s.\-]?\d{3,4}[\s.\-]?\d{3,4}`)},
	{domain.PIISSN, regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{domain.PIICreditCard, regexp.MustCompile(`\b(?:\d[ \-]?){13,16}\b`)},
}

// PIIDetector finds personal information in message text. The remote
// entity-recognition service is the primary path; a fixed set of regular
// expressions is the fallback. Detect never returns an error: both paths
// failing resolves to the empty result, which means "no PII".
type PIIDetector struct {
	client             *entity.Client
	timeout            time.Duration
	fallbackConfidence float64
	logger             *slog.Logger
}

// NewPIIDetector creates a PII detector.
func NewPIIDetector(client *entity.Client, timeout time.Duration, fallbackConfidence float64, logger *slog.Logger) *PIIDetector {
	if logger == nil {
		logger = slog.Default()
	}
	return &PIIDetector{
		client:             client,
		timeout:            timeout,
		fallbackConfidence: fallbackConfidence,
		logger:             logger,
	}
}

// Detect returns all PII findings for text, highest confidence first.
func (d *PIIDetector) Detect(ctx context.Context, text string) []domain.PIIFinding {
	findings, err := Failover(ctx, d.logger, "pii",
		func(ctx context.Context) ([]domain.PIIFinding, error) {
			return d.detectRemote(ctx, text)
		},
		func(ctx context.Context) ([]domain.PIIFinding, error) {
			return d.detectLocal(text), nil
		},
	)
	if err != nil {
		// The local path cannot fail; this is unreachable but keeps the
		// no-error contract explicit.
		return nil
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Confidence > findings[j].Confidence
	})
	return findings
}

func (d *PIIDetector) detectRemote(ctx context.Context, text string) ([]domain.PIIFinding, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	resp, err := d.client.Recognize(ctx, &entity.RecognizeRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("entity recognition: %w", err)
	}

	var findings []domain.PIIFinding
	for _, e := range resp.Entities {
		category, ok := entityLabelMap[e.Label]
		if !ok {
			continue
		}
		findings = append(findings, domain.PIIFinding{
			Category:   category,
			Span:       e.Text,
			Confidence: e.Score,
		})
	}
	return findings, nil
}

func (d *PIIDetector) detectLocal(text string) []domain.PIIFinding {
	var findings []domain.PIIFinding
	for _, p := range fallbackPatterns {
		for _, span := range p.re.FindAllString(text, -1) {
			findings = append(findings, domain.PIIFinding{
				Category:   p.category,
				Span:       span,
				Confidence: d.fallbackConfidence,
			})
		}
	}
	return findings
}
