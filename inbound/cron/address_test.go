package cron

import (
	"clinic-booking/common/contract/mocks"
	"clinic-booking/common/vars"
	"clinic-booking/model"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AddressCronTestSuite struct {
	suite.Suite

	Addresses *mocks.MockAddressApi

	Cfg *viper.Viper
}

func (s *AddressCronTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())

	s.Addresses = mocks.NewMockAddressApi(ctrl)

	s.Cfg = viper.New()
	s.Cfg.Set("cron.address.refresh.interval", "5s")
	s.Cfg.Set("cron.address.refresh.timeout", "10s")

	vars.SetProvinces(nil)

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func (s *AddressCronTestSuite) TearDownTest() {
	vars.SetProvinces(nil)
}

func TestAddressCronTestSuite(t *testing.T) {
	suite.Run(t, new(AddressCronTestSuite))
}

var refreshProvinces = []model.AddressUnit{
	{Id: "79", Name: "Hồ Chí Minh"},
	{Id: "01", Name: "Hà Nội"},
}

func (s *AddressCronTestSuite) TestRefresh() {
	previous := []model.AddressUnit{{Id: "79", Name: "Hồ Chí Minh"}}

	tests := []struct {
		name           string
		snapshot       []model.AddressUnit
		setupMock      func()
		expectedResult []model.AddressUnit
	}{
		{
			name:     "catalog error keeps previous snapshot",
			snapshot: previous,
			setupMock: func() {
				s.Addresses.EXPECT().GetProvinces(gomock.Any()).
					Return(nil, fmt.Errorf("catalog error"))
			},
			expectedResult: previous,
		},
		{
			name:     "empty catalog keeps previous snapshot",
			snapshot: previous,
			setupMock: func() {
				s.Addresses.EXPECT().GetProvinces(gomock.Any()).
					Return([]model.AddressUnit{}, nil)
			},
			expectedResult: previous,
		},
		{
			name:     "success replaces snapshot",
			snapshot: previous,
			setupMock: func() {
				s.Addresses.EXPECT().GetProvinces(gomock.Any()).
					Return(refreshProvinces, nil)
			},
			expectedResult: refreshProvinces,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			vars.SetProvinces(tc.snapshot)

			addressCron := AddressCron{
				Cfg:       s.Cfg,
				Addresses: s.Addresses,
			}

			tc.setupMock()

			addressCron.refresh(context.Background())

			s.Equal(tc.expectedResult, vars.GetProvinces())
		})
	}
}

func (s *AddressCronTestSuite) TestStart() {
	s.Cfg.Set("cron.address.refresh.interval", "200ms")

	// Initial refresh
	s.Addresses.EXPECT().GetProvinces(gomock.Any()).Return(refreshProvinces, nil)

	addressCron := AddressCron{
		Cfg:       s.Cfg,
		Addresses: s.Addresses,
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		addressCron.Start(ctx)
	}()

	time.Sleep(100 * time.Millisecond)

	s.Equal(refreshProvinces, vars.GetProvinces())

	// Next cycle picks up a changed catalog
	updated := []model.AddressUnit{
		{Id: "79", Name: "Hồ Chí Minh"},
		{Id: "01", Name: "Hà Nội"},
		{Id: "48", Name: "Đà Nẵng"},
	}
	s.Addresses.EXPECT().GetProvinces(gomock.Any()).Return(updated, nil)

	time.Sleep(250 * time.Millisecond)

	s.Equal(updated, vars.GetProvinces())

	cancel()

	time.Sleep(100 * time.Millisecond)
}
