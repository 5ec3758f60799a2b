package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/scratchmart/internal/config"
	"github.com/GlebRadaev/scratchmart/internal/handlers"
	"github.com/GlebRadaev/scratchmart/internal/handlers/auth"
	"github.com/GlebRadaev/scratchmart/internal/handlers/balance"
	"github.com/GlebRadaev/scratchmart/internal/handlers/checkin"
	"github.com/GlebRadaev/scratchmart/internal/handlers/checkout"
	"github.com/GlebRadaev/scratchmart/internal/handlers/lottery"
	"github.com/GlebRadaev/scratchmart/internal/service"
	pkgauth "github.com/GlebRadaev/scratchmart/pkg/auth"
)

type ApplicationSuite struct {
	suite.Suite
	app *Application
}

func TestApplication(t *testing.T) {
	suite.Run(t, &ApplicationSuite{})
}

func (s *ApplicationSuite) SetupTest() {
	s.app = New()
}

func (s *ApplicationSuite) TestWait() {
	ctx, cancel := context.WithCancel(context.Background())

	s.app.errCh = make(chan error)
	go func() {
		s.app.errCh <- fmt.Errorf("mock error")
	}()

	err := s.app.Wait(ctx, cancel)

	s.Require().Error(err)
	s.Contains(err.Error(), "mock error")
}

func (s *ApplicationSuite) TestHTTPServer_GracefulShutdown() {
	ctrl := gomock.NewController(s.T())
	lotteryService := lottery.NewMockService(ctrl)
	lotteryService.EXPECT().Winners(gomock.Any(), 0).Return(nil, nil).AnyTimes()

	services := &service.Services{
		AuthService:     auth.NewMockService(ctrl),
		LedgerService:   balance.NewMockService(ctrl),
		LotteryService:  lotteryService,
		CheckInService:  checkin.NewMockService(ctrl),
		CheckoutService: checkout.NewMockService(ctrl),
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	addr := listener.Addr().String()
	s.Require().NoError(listener.Close())

	s.app.cfg = &config.Config{Address: addr}
	s.app.api = handlers.New(services, pkgauth.NewMockJWTServiceInterface(ctrl))

	ctx, cancel := context.WithCancel(context.Background())
	s.Require().NoError(s.app.startHTTPServer(ctx))

	s.Eventually(func() bool {
		resp, err := http.Get("http://" + addr + "/api/lottery/winners")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	s.NoError(s.app.Wait(ctx, cancel))
}
