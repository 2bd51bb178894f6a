package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name RiotProvider --dir ../usecase --output usecase --outpkg usecasemock --filename riot_provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ContentSource --dir ../usecase --output usecase --outpkg usecasemock --filename content_source_mock.go
