package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/cloudshare/cloudshare-cli/internal/client/models"
	"github.com/cloudshare/cloudshare-cli/internal/client/services"
)

// Plans prints the catalog with prices in major currency units.
func (a *App) Plans(ctx context.Context) error {
	for _, p := range models.Plans() {
		marker := " "
		if p.Recommended {
			marker = "*"
		}
		if p.Purchasable() {
			fmt.Fprintf(a.out, "%s %-10s %5d credits  %6d %s\n", marker, p.ID, p.Credits, p.Price, a.config.Currency)
		} else {
			fmt.Fprintf(a.out, "%s %-10s %5d credits  included\n", marker, p.ID, p.Credits)
		}
		for _, feat := range p.Features {
			fmt.Fprintf(a.out, "    - %s\n", feat)
		}
	}
	return nil
}

// Buy runs the purchase flow for one plan id.
func (a *App) Buy(ctx context.Context, planID string) error {
	plan, ok := models.PlanByID(planID)
	if !ok {
		return fmt.Errorf("unknown plan %q, see 'plans'", planID)
	}

	if err := a.payment.Purchase(ctx, plan); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Purchase verified. %d credits added.\n", plan.Credits)
	if c := a.credits.Current(); c.Known {
		fmt.Fprintf(a.out, "Credits remaining: %d\n", c.Remaining)
	}
	return nil
}

// Transactions prints the purchase history.
func (a *App) Transactions(ctx context.Context) error {
	txs, err := a.payment.History(ctx)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Fprintln(a.out, "No purchases yet.")
		return nil
	}
	for _, tx := range txs {
		fmt.Fprintf(a.out, "%s  %-10s %5d credits  %8s %s  %s\n",
			tx.TransactionDate.Format("2006-01-02"), tx.PlanID, tx.CreditsAdded,
			tx.AmountMajor(), a.config.Currency, tx.PaymentID)
	}
	return nil
}

// promptGateway is the terminal stand-in for the hosted checkout page: it
// shows the order to pay and collects the payment id and signature the
// gateway hands back after the user completes payment there.
type promptGateway struct {
	keyID  string
	reader *bufio.Reader
	out    io.Writer
}

func newPromptGateway(keyID string, reader *bufio.Reader, out io.Writer) *promptGateway {
	return &promptGateway{keyID: keyID, reader: reader, out: out}
}

// Ready reports whether a gateway key was configured. Without one the
// checkout cannot be attributed to a merchant account.
func (g *promptGateway) Ready() bool {
	return g.keyID != ""
}

func (g *promptGateway) Open(ctx context.Context, co services.Checkout) (models.PaymentResult, error) {
	fmt.Fprintf(g.out, "Order %s created: %s, amount %d %s (minor units), key %s\n",
		co.OrderID, co.Description, co.Amount, co.Currency, g.keyID)
	fmt.Fprintln(g.out, "Complete the payment with the gateway, then enter its response.")

	paymentID, err := GetSimpleText(g.reader, "Payment id", g.out)
	if err != nil {
		return models.PaymentResult{}, err
	}
	if paymentID == "" {
		return models.PaymentResult{}, fmt.Errorf("checkout cancelled")
	}
	signature, err := GetSimpleText(g.reader, "Signature", g.out)
	if err != nil {
		return models.PaymentResult{}, err
	}

	return models.PaymentResult{
		OrderID:   co.OrderID,
		PaymentID: paymentID,
		Signature: signature,
	}, nil
}
