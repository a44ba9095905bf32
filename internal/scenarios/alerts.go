package scenarios

import (
	"context"
	"fmt"
	"io"

	"memecoin-client-go/internal/common"
	"memecoin-client-go/internal/models"
)

// Alerts creates a price alert and a volume spike alert on coin 1
func Alerts(ctx context.Context, s *common.Services, w io.Writer) error {
	if _, err := login(ctx, s); err != nil {
		return err
	}

	alert, err := s.API.CreateAlert(ctx, models.NewAlert{
		CoinId:              1,
		Type:                models.AlertPriceAbove,
		Condition:           models.AlertCondition{TargetPrice: dec("0.10")},
		NotificationMethods: []string{models.NotifyEmail, models.NotifyPush},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Alert created: %d\n", alert.Data.Id)

	volumeAlert, err := s.API.CreateAlert(ctx, models.NewAlert{
		CoinId:              1,
		Type:                models.AlertVolumeSpike,
		Condition:           models.AlertCondition{VolumeThreshold: dec("1000000")},
		NotificationMethods: []string{models.NotifyEmail},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Volume alert created: %d\n", volumeAlert.Data.Id)

	alerts, err := s.API.GetAlerts(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Total alerts: %d\n", len(alerts.Data))
	return nil
}
